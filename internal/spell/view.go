package spell

import "strings"

// HandNames 是11种扑克手牌的固定顺序列表，从最弱到最强。
// 所有列出或导出手牌效果的地方都必须保持这个顺序。
var HandNames = [11]string{
	"As",
	"Para",
	"Para Figur",
	"Dwie Pary",
	"Trójka",
	"Strit",
	"Kolor",
	"Ful",
	"Kareta",
	"Poker",
	"Królewski Poker",
}

// HandEffect 是手牌标签与效果文本的配对
type HandEffect struct {
	Hand   string `json:"hand"`
	Effect string `json:"effect"`
}

// Record 是条目在内存仓库和API中使用的视图模型。
// 它由 ToViewModel 从持久化的 Spell 一比一映射而来。
type Record struct {
	ID          uint   `json:"id"`
	Kind        string `json:"type"`
	NamePL      string `json:"name_pl"`
	NameEN      string `json:"name_en"`
	Source      string `json:"source"`
	Attribute   string `json:"attribute"`
	MinHand     string `json:"min_hand"`
	Casting     string `json:"casting"`
	Duration    string `json:"duration"`
	Range       string `json:"range"`
	Description string `json:"description"`

	// HandEffects 按 HandNames 的固定顺序排列，长度恒为11
	HandEffects [11]HandEffect `json:"hand_effects"`

	// OwnerID 为空表示基础种子数据
	OwnerID string `json:"owner_id"`

	// 两个名称的小写缓存，用于大小写无关的搜索。
	// 不变式：任何名称变更后必须重新计算。
	NamePLLower string `json:"-"`
	NameENLower string `json:"-"`
}

// effectOf 按固定的列名表把第i个手牌标签映射到对应的效果列。
// 这个映射是旧表格11列效果的一比一对应，不做任何取舍。
func effectOf(s *Spell, i int) string {
	switch i {
	case 0:
		return s.EffectAce
	case 1:
		return s.EffectPair
	case 2:
		return s.EffectFacePair
	case 3:
		return s.EffectTwoPair
	case 4:
		return s.EffectThreeOfKind
	case 5:
		return s.EffectStraight
	case 6:
		return s.EffectFlush
	case 7:
		return s.EffectFullHouse
	case 8:
		return s.EffectFourOfKind
	case 9:
		return s.EffectPoker
	case 10:
		return s.EffectRoyalPoker
	}
	return ""
}

// ToViewModel 把一条持久化记录映射为视图模型。
// 映射是全函数且幂等的：任何输入都恰好产生一个Record，没有字段被丢弃。
// sztuka条目的四个奇术专属字段无条件置为占位符，小写缓存在映射时重新计算。
func ToViewModel(s *Spell) Record {
	r := Record{
		ID:          s.ID,
		Kind:        s.Type,
		NamePL:      s.NamePL,
		NameEN:      s.NameEN,
		Source:      s.Source,
		Attribute:   s.Attribute,
		MinHand:     s.MinHand,
		Casting:     s.Casting,
		Duration:    s.Duration,
		Range:       s.Range,
		Description: s.Description,
		OwnerID:     s.CreatedBy,
	}

	if s.Type == KindSztuka {
		r.MinHand = Placeholder
		r.Casting = Placeholder
		r.Duration = Placeholder
		r.Range = Placeholder
	}

	for i := range HandNames {
		r.HandEffects[i] = HandEffect{Hand: HandNames[i], Effect: effectOf(s, i)}
	}

	r.NamePLLower = strings.ToLower(s.NamePL)
	r.NameENLower = strings.ToLower(s.NameEN)
	return r
}

// VisibleHandEffects 返回按固定顺序过滤掉空白效果后的手牌效果列表。
// 只有kant条目会展示效果表。
func (r *Record) VisibleHandEffects() []HandEffect {
	if r.Kind != KindKant {
		return nil
	}
	visible := make([]HandEffect, 0, len(r.HandEffects))
	for _, he := range r.HandEffects {
		if strings.TrimSpace(he.Effect) != "" {
			visible = append(visible, he)
		}
	}
	return visible
}
