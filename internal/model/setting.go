package model

// SettingItem is a runtime-editable key/value setting.
type SettingItem struct {
	Key   string `gorm:"column:key;primaryKey;size:64" json:"key"`
	Value string `gorm:"column:value;size:1024" json:"value"`
}

func (SettingItem) TableName() string {
	return "setting_items"
}
