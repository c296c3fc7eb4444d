package grimoire

import "gorm.io/gorm"

// 书页条目的两种状态
const (
	StatusPresent = "present" // 已确认抄录在册
	StatusMissing = "missing" // 确认缺失
)

// Character 是用户名下的一个角色，角色拥有已知奇术列表和若干法术书
type Character struct {
	gorm.Model

	// OwnerID 是角色所属用户的UUID
	OwnerID string `gorm:"column:owner_id;type:varchar(36);index;not null" json:"owner_id"`

	// Name 是角色名
	Name string `gorm:"not null" json:"name"`

	// ImageURL 是可选的角色头像地址
	ImageURL string `gorm:"column:image_url" json:"image_url"`
}

// KnownSpell 是角色已学会的一条奇术。
// 与条目表之间没有外键：关联完全靠两个名称做大小写无关匹配。
// 这是从旧数据模型沿袭下来的约定——条目改名会让已有的已知记录失去对应。
type KnownSpell struct {
	gorm.Model

	CharacterID uint `gorm:"index;not null" json:"character_id"`

	SpellNamePL string `gorm:"column:spell_name_pl" json:"spell_name_pl"`
	SpellNameEN string `gorm:"column:spell_name_en" json:"spell_name_en"`

	// SortOrder 是列表内的显示顺序，从1开始，拖拽排序后重新分配
	SortOrder int `gorm:"column:sort_order" json:"sort_order"`
}

// Spellbook 是角色名下的一本法术书
type Spellbook struct {
	gorm.Model

	CharacterID uint `gorm:"index;not null" json:"character_id"`

	Name string `gorm:"not null" json:"name"`

	// Reliability 是整数可靠度评分，引擎不解释其含义，仅用于展示
	Reliability int `gorm:"default:1" json:"reliability"`
}

// SpellbookSpell 是法术书里的一页，名称匹配规则与KnownSpell相同
type SpellbookSpell struct {
	gorm.Model

	SpellbookID uint `gorm:"index;not null" json:"spellbook_id"`

	SpellNamePL string `gorm:"column:spell_name_pl" json:"spell_name_pl"`
	SpellNameEN string `gorm:"column:spell_name_en" json:"spell_name_en"`

	// Status 取值为 "present" 或 "missing"
	Status string `gorm:"default:present" json:"status"`
}
