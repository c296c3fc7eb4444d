package grimoire

import (
	"testing"

	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
)

func recordWithNames(id uint, namePL, nameEN string) spell.Record {
	s := spell.Spell{Type: spell.KindKant, NamePL: namePL, NameEN: nameEN}
	s.ID = id
	return spell.ToViewModel(&s)
}

func knownEntry(id uint, namePL, nameEN string) KnownSpell {
	e := KnownSpell{SpellNamePL: namePL, SpellNameEN: nameEN}
	e.ID = id
	return e
}

func TestMatchKnownCaseInsensitiveAndTrimmed(t *testing.T) {
	r := recordWithNames(1, "Czarna Dama", "Black Queen")
	entries := []KnownSpell{knownEntry(10, "  czarna dama  ", "")}

	got := MatchKnown(&r, entries)
	if got == nil || got.ID != 10 {
		t.Fatalf("大小写和首尾空白不应影响匹配，得到 %+v", got)
	}
}

func TestMatchKnownMatchesEitherName(t *testing.T) {
	r := recordWithNames(1, "Czarna Dama", "Black Queen")

	if got := MatchKnown(&r, []KnownSpell{knownEntry(10, "", "black queen")}); got == nil {
		t.Fatalf("英文名单独命中也应匹配")
	}
	if got := MatchKnown(&r, []KnownSpell{knownEntry(11, "inna nazwa", "black queen")}); got == nil {
		t.Fatalf("波兰文名不同时英文名命中仍应匹配")
	}
}

func TestMatchKnownDoesNotCrossLanguages(t *testing.T) {
	// 记录的英文名写进了条目的波兰文名字段：不同语言的字段不互相比较
	r := recordWithNames(1, "Czarna Dama", "Black Queen")
	entries := []KnownSpell{knownEntry(10, "Black Queen", "")}

	if got := MatchKnown(&r, entries); got != nil {
		t.Fatalf("波兰文字段不应与英文名匹配，得到 %+v", got)
	}
}

func TestMatchKnownIgnoresEmptyNames(t *testing.T) {
	// 双方都是空名称时不能算命中
	r := recordWithNames(1, "", "")
	entries := []KnownSpell{knownEntry(10, "", "")}

	if got := MatchKnown(&r, entries); got != nil {
		t.Fatalf("空名称不参与匹配，得到 %+v", got)
	}
}

func TestMatchKnownFirstMatchWins(t *testing.T) {
	// 同名多条命中时按列表顺序返回第一条，不做消歧
	r := recordWithNames(1, "Dubel", "Double")
	entries := []KnownSpell{
		knownEntry(10, "inna", ""),
		knownEntry(11, "dubel", ""),
		knownEntry(12, "Dubel", ""),
	}

	got := MatchKnown(&r, entries)
	if got == nil || got.ID != 11 {
		t.Fatalf("应返回列表中第一条命中(ID 11)，得到 %+v", got)
	}
}

func TestMatchKnownOrphanedAfterRename(t *testing.T) {
	// 条目改名后，按旧名称存储的已知记录失去对应——这是沿袭的行为
	renamed := recordWithNames(1, "Nowa Nazwa", "New Name")
	entries := []KnownSpell{knownEntry(10, "Stara Nazwa", "Old Name")}

	if got := MatchKnown(&renamed, entries); got != nil {
		t.Fatalf("改名后的条目不应再匹配旧记录，得到 %+v", got)
	}
}

func TestMatchSpellbookEntry(t *testing.T) {
	r := recordWithNames(1, "Czarna Dama", "Black Queen")
	e := SpellbookSpell{SpellNamePL: "czarna dama"}
	e.ID = 20

	got := MatchSpellbookEntry(&r, []SpellbookSpell{e})
	if got == nil || got.ID != 20 {
		t.Fatalf("书页匹配应与已知列表使用相同规则，得到 %+v", got)
	}
}

func TestKnownRecordIDs(t *testing.T) {
	records := []spell.Record{
		recordWithNames(1, "Amulet", "Amulet"),
		recordWithNames(2, "Czarna Dama", "Black Queen"),
		recordWithNames(3, "Złoty Strzał", "Golden Shot"),
	}
	entries := []KnownSpell{
		knownEntry(10, "czarna dama", ""),
		knownEntry(11, "", "golden shot"),
	}

	known := KnownRecordIDs(records, entries)

	if len(known) != 2 {
		t.Fatalf("应标记2条已知，得到 %d: %v", len(known), known)
	}
	if known[2] != 10 || known[3] != 11 {
		t.Fatalf("条目ID到已知记录ID的映射错误: %v", known)
	}
	if _, ok := known[1]; ok {
		t.Fatalf("未学会的条目不应出现在映射中: %v", known)
	}
}
