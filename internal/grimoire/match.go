package grimoire

import (
	"strings"

	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
)

// normalizeName 统一名称比较形式：去掉首尾空白并转为小写
func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// namesMatch 判断一对名称是否与条目的对应字段匹配。
// 波兰文名对波兰文名、英文名对英文名，任一相等即算命中；空名称不参与匹配。
func namesMatch(namePL, nameEN string, r *spell.Record) bool {
	pl := normalizeName(namePL)
	en := normalizeName(nameEN)
	if pl != "" && pl == normalizeName(r.NamePL) {
		return true
	}
	if en != "" && en == normalizeName(r.NameEN) {
		return true
	}
	return false
}

// MatchKnown 在已知奇术列表中查找与条目对应的记录。
// 按列表顺序返回第一条命中，找不到返回nil。
// 同名多条命中不做消歧——先到先得，这是已接受的局限。
func MatchKnown(r *spell.Record, entries []KnownSpell) *KnownSpell {
	for i := range entries {
		if namesMatch(entries[i].SpellNamePL, entries[i].SpellNameEN, r) {
			return &entries[i]
		}
	}
	return nil
}

// MatchSpellbookEntry 在法术书页中查找与条目对应的记录，规则与MatchKnown相同
func MatchSpellbookEntry(r *spell.Record, entries []SpellbookSpell) *SpellbookSpell {
	for i := range entries {
		if namesMatch(entries[i].SpellNamePL, entries[i].SpellNameEN, r) {
			return &entries[i]
		}
	}
	return nil
}

// KnownRecordIDs 把角色的已知列表映射为条目ID集合，供表格视图标记“已学会”。
// 对每条记录用MatchKnown做名称匹配；改名后失去对应的旧记录自然不会出现在结果里。
func KnownRecordIDs(records []spell.Record, entries []KnownSpell) map[uint]uint {
	known := make(map[uint]uint)
	for i := range records {
		if e := MatchKnown(&records[i], entries); e != nil {
			known[records[i].ID] = e.ID
		}
	}
	return known
}
