package model

// Tag 能力标签（taxonomy 中的一个条目），Group/Criteria 通过它标识所考察的能力
type Tag struct {
	BaseModel
	TaxonomyName string `gorm:"size:255;not null;index" json:"taxonomyName"`
	Value        string `gorm:"size:255;not null" json:"value"`
	ExternalID   string `gorm:"size:255;index" json:"externalId"`
}

func (Tag) TableName() string {
	return "tags"
}

// ObjectTag 内容对象与标签的关联：object_id 为外部学习单元标识（usage key）
type ObjectTag struct {
	BaseModel
	ObjectID string `gorm:"size:255;not null;index" json:"objectId"`
	TagID    uint   `gorm:"index;not null" json:"tagId"`
	Tag      Tag    `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (ObjectTag) TableName() string {
	return "object_tags"
}
