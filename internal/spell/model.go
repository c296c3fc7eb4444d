package spell

import "gorm.io/gorm"

// 两种互斥的条目类型（沿用原始数据表的叫法）
const (
	KindKant    = "kant"    // 主要奇术，带扑克手牌效果表
	KindSztuka  = "sztuka"  // 小技巧，四个奇术专属字段固定为占位符
	Placeholder = "-"       // sztuka条目在奇术专属字段上的占位符
)

// Spell 定义了数据库中卡牌奇术的数据结构。
// 列名沿用旧表格迁移下来的snake_case命名，不可随意改动。
type Spell struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// Type 是条目类型，取值为 "kant" 或 "sztuka"
	Type string `gorm:"column:type;not null;index" json:"type"`

	// Source 是来源分类，用于下拉筛选
	Source string `gorm:"column:source" json:"source"`

	// NameEN 是英文名称
	NameEN string `gorm:"column:name_en;uniqueIndex:idx_spells_names" json:"name_en"`

	// NamePL 是波兰文名称
	NamePL string `gorm:"column:name_pl;uniqueIndex:idx_spells_names" json:"name_pl"`

	// Attribute 是特性分类（Cecha），用于下拉筛选
	Attribute string `gorm:"column:attribute" json:"attribute"`

	// --- 以下四个字段仅对kant有意义 ---

	// MinHand 是施展所需的最低扑克手牌
	MinHand string `gorm:"column:min_hand" json:"min_hand"`

	// Casting 是施法消耗
	Casting string `gorm:"column:casting" json:"casting"`

	// Duration 是持续时间
	Duration string `gorm:"column:duration" json:"duration"`

	// Range 是作用距离
	Range string `gorm:"column:range" json:"range"`

	// Description 是自由文本描述
	Description string `gorm:"column:description" json:"description"`

	// --- 11列手牌效果，从最弱到最强，仅对kant有意义 ---

	EffectAce         string `gorm:"column:effect_ace" json:"effect_ace"`
	EffectPair        string `gorm:"column:effect_pair" json:"effect_pair"`
	EffectFacePair    string `gorm:"column:effect_face_pair" json:"effect_face_pair"`
	EffectTwoPair     string `gorm:"column:effect_two_pair" json:"effect_two_pair"`
	EffectThreeOfKind string `gorm:"column:effect_three_of_kind" json:"effect_three_of_kind"`
	EffectStraight    string `gorm:"column:effect_straight" json:"effect_straight"`
	EffectFlush       string `gorm:"column:effect_flush" json:"effect_flush"`
	EffectFullHouse   string `gorm:"column:effect_full_house" json:"effect_full_house"`
	EffectFourOfKind  string `gorm:"column:effect_four_of_kind" json:"effect_four_of_kind"`
	EffectPoker       string `gorm:"column:effect_poker" json:"effect_poker"`
	EffectRoyalPoker  string `gorm:"column:effect_royal_poker" json:"effect_royal_poker"`

	// CreatedBy 是创建者的用户UUID；为空表示基础种子数据
	CreatedBy string `gorm:"column:created_by;type:varchar(36)" json:"created_by"`
}
