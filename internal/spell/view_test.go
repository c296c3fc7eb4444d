package spell

import "testing"

func TestToViewModelMapsAllFields(t *testing.T) {
	s := Spell{
		Type:        KindKant,
		Source:      "Core",
		NameEN:      "Black Queen",
		NamePL:      "Czarna Dama",
		Attribute:   "Spryt",
		MinHand:     "Para",
		Casting:     "1 akcja",
		Duration:    "1 runda",
		Range:       "Dotyk",
		Description: "opis",
		EffectAce:   "efekt asa",
		EffectPoker: "efekt pokera",
		CreatedBy:   "uuid-1",
	}
	s.ID = 7

	r := ToViewModel(&s)

	if r.ID != 7 || r.Kind != KindKant || r.NamePL != "Czarna Dama" || r.NameEN != "Black Queen" {
		t.Fatalf("基础字段映射错误: %+v", r)
	}
	if r.MinHand != "Para" || r.Casting != "1 akcja" || r.Duration != "1 runda" || r.Range != "Dotyk" {
		t.Fatalf("kant的四个专属字段必须原样保留: %+v", r)
	}
	if r.OwnerID != "uuid-1" {
		t.Fatalf("created_by应映射为OwnerID，得到 %q", r.OwnerID)
	}
	if r.NamePLLower != "czarna dama" || r.NameENLower != "black queen" {
		t.Fatalf("小写缓存未重新计算: %q / %q", r.NamePLLower, r.NameENLower)
	}
}

func TestToViewModelForcesPlaceholderForSztuka(t *testing.T) {
	// 即使数据库里残留了值，sztuka的四个字段也必须被占位符覆盖
	s := Spell{
		Type:     KindSztuka,
		NamePL:   "Sztuczka",
		NameEN:   "Trick",
		Source:   "Core",
		MinHand:  "Poker",
		Casting:  "2 akcje",
		Duration: "1 godzina",
		Range:    "10 m",
	}

	r := ToViewModel(&s)

	if r.MinHand != Placeholder || r.Casting != Placeholder ||
		r.Duration != Placeholder || r.Range != Placeholder {
		t.Fatalf("sztuka的四个字段必须是 %q: %+v", Placeholder, r)
	}
}

func TestToViewModelIsIdempotentOnQuad(t *testing.T) {
	s := Spell{Type: KindSztuka, NamePL: "Sztuczka", NameEN: "Trick"}
	first := ToViewModel(&s)

	// 把视图模型的值写回再映射一次，结果必须不变
	s.MinHand = first.MinHand
	s.Casting = first.Casting
	s.Duration = first.Duration
	s.Range = first.Range
	second := ToViewModel(&s)

	if second != first {
		t.Fatalf("重复映射应得到相同结果:\n第一次 %+v\n第二次 %+v", first, second)
	}
}

func TestToViewModelHandEffectsKeepFixedOrder(t *testing.T) {
	s := Spell{
		Type:             KindKant,
		NamePL:           "Kant",
		NameEN:           "Con",
		EffectAce:        "a",
		EffectFacePair:   "c",
		EffectRoyalPoker: "k",
	}

	r := ToViewModel(&s)

	if len(r.HandEffects) != len(HandNames) {
		t.Fatalf("效果列表长度必须恒为 %d", len(HandNames))
	}
	for i := range HandNames {
		if r.HandEffects[i].Hand != HandNames[i] {
			t.Fatalf("位置 %d 的手牌标签应为 %q，得到 %q", i, HandNames[i], r.HandEffects[i].Hand)
		}
	}
	if r.HandEffects[0].Effect != "a" || r.HandEffects[2].Effect != "c" || r.HandEffects[10].Effect != "k" {
		t.Fatalf("效果列映射错位: %+v", r.HandEffects)
	}
}

func TestVisibleHandEffectsSkipsBlankAndKeepsOrder(t *testing.T) {
	s := Spell{
		Type:        KindKant,
		NamePL:      "Kant",
		NameEN:      "Con",
		EffectPair:  "drugi",
		EffectFlush: "   ", // 纯空白视同缺失
		EffectPoker: "dziesiąty",
	}

	r := ToViewModel(&s)
	visible := r.VisibleHandEffects()

	if len(visible) != 2 {
		t.Fatalf("应只剩2条非空效果，得到 %d: %+v", len(visible), visible)
	}
	if visible[0].Hand != "Para" || visible[1].Hand != "Poker" {
		t.Fatalf("可见效果必须保持固定顺序: %+v", visible)
	}
}

func TestVisibleHandEffectsNilForSztuka(t *testing.T) {
	s := Spell{Type: KindSztuka, NamePL: "Sztuczka", NameEN: "Trick"}
	r := ToViewModel(&s)
	if r.VisibleHandEffects() != nil {
		t.Fatalf("sztuka不应展示手牌效果表")
	}
}
