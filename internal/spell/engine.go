package spell

import (
	"sort"
	"strings"
)

// 排序方向
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultSuggestLimit 是自动补全建议的默认条数上限
const DefaultSuggestLimit = 10

// Query 描述了表格视图的一次查询：搜索文本、三个筛选器和排序设置。
// 空字符串的筛选字段表示“不过滤”。
type Query struct {
	SearchText      string `form:"search"`
	TypeFilter      string `form:"type"`
	SourceFilter    string `form:"source"`
	AttributeFilter string `form:"attribute"`
	SortColumn      string `form:"sort"`
	SortDirection   string `form:"dir"`
}

// sortKey 返回记录在指定排序列上的比较键。
// 未知或缺失的列按空字符串处理；字符串列比较一律大小写无关。
func sortKey(r *Record, column string) string {
	var v string
	switch column {
	case "name_pl":
		v = r.NamePL
	case "name_en":
		v = r.NameEN
	case "type":
		v = r.Kind
	case "source":
		v = r.Source
	case "attribute":
		v = r.Attribute
	case "min_hand":
		v = r.MinHand
	case "casting":
		v = r.Casting
	case "duration":
		v = r.Duration
	case "range":
		v = r.Range
	}
	return strings.ToLower(v)
}

// matchesSearch 判断搜索词是否命中记录的任一小写名称缓存。
// 空搜索词命中一切。
func matchesSearch(r *Record, lowerTerm string) bool {
	if lowerTerm == "" {
		return true
	}
	return strings.Contains(r.NamePLLower, lowerTerm) ||
		strings.Contains(r.NameENLower, lowerTerm)
}

// matches 判断记录是否通过查询的全部筛选条件。
// 类型、来源、特性都是精确匹配（区分大小写），不做子串匹配。
func matches(r *Record, q *Query, lowerTerm string) bool {
	if !matchesSearch(r, lowerTerm) {
		return false
	}
	if q.TypeFilter != "" && r.Kind != q.TypeFilter {
		return false
	}
	if q.SourceFilter != "" && r.Source != q.SourceFilter {
		return false
	}
	if q.AttributeFilter != "" && r.Attribute != q.AttributeFilter {
		return false
	}
	return true
}

// DeriveView 根据查询条件从完整集合推导出有序的可见视图。
// 先过滤后排序；排序是稳定的三路比较，键相等的记录永远保持原有相对顺序。
// 不分页，每次返回完整结果集；空集合或零命中都返回空列表而非错误。
func DeriveView(records []Record, q Query) []Record {
	lowerTerm := strings.ToLower(q.SearchText)

	result := make([]Record, 0, len(records))
	for i := range records {
		if matches(&records[i], &q, lowerTerm) {
			result = append(result, records[i])
		}
	}

	if q.SortColumn != "" {
		sign := 1
		if q.SortDirection == SortDesc {
			sign = -1
		}
		sort.SliceStable(result, func(i, j int) bool {
			a := sortKey(&result[i], q.SortColumn)
			b := sortKey(&result[j], q.SortColumn)
			if a < b {
				return sign > 0
			}
			if a > b {
				return sign < 0
			}
			return false
		})
	}

	return result
}

// Suggest 为自动补全搜索框返回建议列表。
// 它忽略表格当前的筛选状态，对完整集合使用与DeriveView相同的子串谓词，
// 按集合遍历顺序返回前limit条命中——不计算任何相关度排名。
// 空的partial返回空列表（区别于“显示全部”），提示调用方隐藏建议层。
// limit来自请求参数，不可信：非正值回落到默认条数，上限收紧到集合大小。
func Suggest(records []Record, partial string, limit int) []Record {
	if partial == "" {
		return []Record{}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > len(records) {
		limit = len(records)
	}

	lowerTerm := strings.ToLower(partial)
	result := make([]Record, 0, limit)
	for i := range records {
		if matchesSearch(&records[i], lowerTerm) {
			result = append(result, records[i])
			if len(result) >= limit {
				break
			}
		}
	}
	return result
}
