package spell

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kobstaw/kanty-grimoire-backend/internal/profile"
	"github.com/kobstaw/kanty-grimoire-backend/pkg/dberr"
)

// --- API响应模型 ---

// RowResponse 是表格视图中一行的数据
type RowResponse struct {
	ID        uint   `json:"id"`
	NamePL    string `json:"namePl"`
	NameEN    string `json:"nameEn"`
	Type      string `json:"type"`
	Source    string `json:"source"`
	Attribute string `json:"attribute"`
	MinHand   string `json:"minHand"`
	Casting   string `json:"casting"`
	Duration  string `json:"duration"`
	Range     string `json:"range"`
}

// ListResponse 是表格视图接口的完整响应，带筛选选项和结果计数
type ListResponse struct {
	Total      int           `json:"total"`
	Count      int           `json:"count"`
	Sources    []string      `json:"sources"`
	Attributes []string      `json:"attributes"`
	Spells     []RowResponse `json:"spells"`
}

// DetailResponse 是单条目视图的数据，手牌效果已按固定顺序过滤掉空白项
type DetailResponse struct {
	RowResponse
	Description string       `json:"description"`
	HandEffects []HandEffect `json:"handEffects"`
	OwnerID     string       `json:"ownerId,omitempty"`
	CanEdit     bool         `json:"canEdit"`
	CanDelete   bool         `json:"canDelete"`
}

// SuggestResponse 是自动补全建议的单条数据
type SuggestResponse struct {
	ID     uint   `json:"id"`
	NamePL string `json:"namePl"`
	NameEN string `json:"nameEn"`
	Type   string `json:"type"`
}

func formatRow(r *Record) RowResponse {
	return RowResponse{
		ID:        r.ID,
		NamePL:    r.NamePL,
		NameEN:    r.NameEN,
		Type:      r.Kind,
		Source:    r.Source,
		Attribute: r.Attribute,
		MinHand:   r.MinHand,
		Casting:   r.Casting,
		Duration:  r.Duration,
		Range:     r.Range,
	}
}

func formatDetail(r *Record, user profile.Identity) DetailResponse {
	return DetailResponse{
		RowResponse: formatRow(r),
		Description: r.Description,
		HandEffects: r.VisibleHandEffects(),
		OwnerID:     r.OwnerID,
		CanEdit:     profile.CanEdit(r.OwnerID, user),
		CanDelete:   profile.CanDelete(r.OwnerID, user),
	}
}

// --- 控制器函数 ---

// GetSpells 返回按查询条件推导出的表格视图
func GetSpells(c *gin.Context) {
	var q Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "查询参数不正确"})
		return
	}

	view := ListView(q)
	sources, attributes := FilterOptions()

	rows := make([]RowResponse, len(view))
	for i := range view {
		rows[i] = formatRow(&view[i])
	}

	c.JSON(http.StatusOK, ListResponse{
		Total:      RecordCount(),
		Count:      len(rows),
		Sources:    sources,
		Attributes: attributes,
		Spells:     rows,
	})
}

// GetSuggestions 返回自动补全建议
func GetSuggestions(c *gin.Context) {
	partial := c.Query("q")
	limit := DefaultSuggestLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	matched := SuggestRecords(partial, limit)
	suggestions := make([]SuggestResponse, len(matched))
	for i := range matched {
		suggestions[i] = SuggestResponse{
			ID:     matched[i].ID,
			NamePL: matched[i].NamePL,
			NameEN: matched[i].NameEN,
			Type:   matched[i].Kind,
		}
	}
	c.JSON(http.StatusOK, suggestions)
}

// parseIDParam 解析路径中的条目ID
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "条目ID不正确"})
		return 0, false
	}
	return uint(id), true
}

// GetSpellByID 返回单个条目的详情视图
func GetSpellByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	r, err := GetRecordDetail(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的条目"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询条目失败"})
		return
	}

	c.JSON(http.StatusOK, formatDetail(&r, profile.CurrentIdentity(c)))
}

// writeError 把服务层错误翻译为HTTP响应。
// 唯一约束冲突必须以专门的提示返回，其余持久化错误原样透出、不做重试。
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的条目"})
	case errors.Is(err, dberr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "同名条目已存在"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// CreateSpellHandler 创建一条用户自有条目
func CreateSpellHandler(c *gin.Context) {
	var input SpellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	user := profile.CurrentIdentity(c)
	r, err := CreateSpell(input, user.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, formatDetail(&r, user))
}

// UpdateSpellHandler 更新一条条目，要求访问者是创建者或管理员
func UpdateSpellHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	s, err := GetSpellModel(id)
	if err != nil {
		writeError(c, err)
		return
	}

	user := profile.CurrentIdentity(c)
	if !profile.CanEdit(s.CreatedBy, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "没有权限编辑该条目"})
		return
	}

	var input SpellInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	r, err := UpdateSpell(id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, formatDetail(&r, user))
}

// DeleteSpellHandler 删除一条条目，要求访问者是创建者或管理员
func DeleteSpellHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	s, err := GetSpellModel(id)
	if err != nil {
		writeError(c, err)
		return
	}

	user := profile.CurrentIdentity(c)
	if !profile.CanDelete(s.CreatedBy, user) {
		c.JSON(http.StatusForbidden, gin.H{"error": "没有权限删除该条目"})
		return
	}

	if err := DeleteSpell(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
