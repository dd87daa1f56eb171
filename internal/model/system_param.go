package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Well-known parameter names. Fetch strategies persist their progress here
// so a restarted batch resumes from the last processed date.
const (
	SysParamEDINETLastFetchedDate  = "EDINET_LAST_FETCHED_DATE"
	SysParamTDnetLastFetchedDate   = "TDNET_LAST_FETCHED_DATE"
	SysParamJQuantsLastFetchedDate = "JQUANTS_LAST_FETCHED_DATE"
)

type SystemParameter struct {
	Name        string         `gorm:"column:name;type:varchar(100);primaryKey" json:"name"`
	Value       datatypes.JSON `gorm:"column:value;type:jsonb" json:"value"`
	Description string         `gorm:"column:description;type:text" json:"description"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
}

func (SystemParameter) TableName() string {
	return "system_parameters"
}
