package grimoire

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kobstaw/kanty-grimoire-backend/internal/profile"
	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
)

// writeError 把服务层错误翻译为HTTP响应
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "找不到指定的实体"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrToggleInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseIDParam 解析路径中指定名字的数字ID
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID不正确"})
		return 0, false
	}
	return uint(id), true
}

// ownedCharacter 解析路径中的角色ID并校验所属用户
func ownedCharacter(c *gin.Context) (*Character, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}
	ch, err := GetOwnedCharacter(id, profile.CurrentIdentity(c).ID)
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return ch, true
}

// --- 角色 ---

type characterRequest struct {
	Name     string `json:"name" binding:"required"`
	ImageURL string `json:"image_url"`
}

// CreateCharacterHandler 创建角色
func CreateCharacterHandler(c *gin.Context) {
	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	ch, err := CreateCharacter(profile.CurrentIdentity(c).ID, req.Name, req.ImageURL)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

// ListCharactersHandler 列出当前用户的全部角色
func ListCharactersHandler(c *gin.Context) {
	chars, err := ListCharacters(profile.CurrentIdentity(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, chars)
}

// DeleteCharacterHandler 删除角色及其名下数据
func DeleteCharacterHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := DeleteCharacter(id, profile.CurrentIdentity(c).ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// --- 已知奇术 ---

// knownSpellsResponse 是已知列表接口的响应。
// KnownRecordIDs 把当前工作集中匹配到的条目ID映射到已知记录ID，供表格标记。
type knownSpellsResponse struct {
	Entries        []KnownSpell  `json:"entries"`
	KnownRecordIDs map[uint]uint `json:"knownRecordIds"`
}

// ListKnownSpellsHandler 返回角色的已知列表和条目匹配结果
func ListKnownSpellsHandler(c *gin.Context) {
	ch, ok := ownedCharacter(c)
	if !ok {
		return
	}

	entries, err := ListKnownSpells(ch.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, knownSpellsResponse{
		Entries:        entries,
		KnownRecordIDs: KnownRecordIDs(spell.Snapshot(), entries),
	})
}

type toggleRequest struct {
	SpellNamePL string `json:"spell_name_pl"`
	SpellNameEN string `json:"spell_name_en"`
}

// ToggleKnownSpellHandler 切换角色对一条奇术的已知状态
func ToggleKnownSpellHandler(c *gin.Context) {
	ch, ok := ownedCharacter(c)
	if !ok {
		return
	}

	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}
	if req.SpellNamePL == "" && req.SpellNameEN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "至少需要提供一个名称"})
		return
	}

	added, err := ToggleKnownSpell(ch.ID, req.SpellNamePL, req.SpellNameEN)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

type reorderRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

// ReorderKnownSpellsHandler 按新的显示顺序持久化已知列表。
// 部分失败时返回409，响应体携带存储中的权威顺序，客户端应以其覆盖本地状态。
func ReorderKnownSpellsHandler(c *gin.Context) {
	ch, ok := ownedCharacter(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	entries, err := ReorderKnownSpells(c.Request.Context(), ch.ID, req.IDs)
	if err != nil {
		if errors.Is(err, ErrConsistency) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   err.Error(),
				"entries": entries,
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// --- 法术书 ---

type spellbookRequest struct {
	Name        string `json:"name" binding:"required"`
	Reliability int    `json:"reliability"`
}

// CreateSpellbookHandler 在角色名下创建法术书
func CreateSpellbookHandler(c *gin.Context) {
	ch, ok := ownedCharacter(c)
	if !ok {
		return
	}

	var req spellbookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}

	book, err := CreateSpellbook(ch.ID, req.Name, req.Reliability)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// ListSpellbooksHandler 列出角色名下的法术书
func ListSpellbooksHandler(c *gin.Context) {
	ch, ok := ownedCharacter(c)
	if !ok {
		return
	}

	books, err := ListSpellbooks(ch.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// DeleteSpellbookHandler 删除法术书及其书页
func DeleteSpellbookHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := DeleteSpellbook(id, profile.CurrentIdentity(c).ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// spellbookSpellsResponse 是书页列表的响应，同样附带条目匹配结果
type spellbookSpellsResponse struct {
	Spellbook *Spellbook       `json:"spellbook"`
	Entries   []SpellbookSpell `json:"entries"`
}

// ListSpellbookSpellsHandler 返回法术书的全部书页
func ListSpellbookSpellsHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := GetOwnedSpellbook(id, profile.CurrentIdentity(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}

	entries, err := ListSpellbookSpells(book.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, spellbookSpellsResponse{Spellbook: book, Entries: entries})
}

type spellbookSpellRequest struct {
	SpellNamePL string `json:"spell_name_pl"`
	SpellNameEN string `json:"spell_name_en"`
	Status      string `json:"status"`
}

// AddSpellbookSpellHandler 往法术书里添加一页
func AddSpellbookSpellHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := GetOwnedSpellbook(id, profile.CurrentIdentity(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}

	var req spellbookSpellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}
	if req.SpellNamePL == "" && req.SpellNameEN == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "至少需要提供一个名称"})
		return
	}

	entry, err := AddSpellbookSpell(book.ID, req.SpellNamePL, req.SpellNameEN, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetSpellbookSpellStatusHandler 翻转书页的在册/缺失状态
func SetSpellbookSpellStatusHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式不正确"})
		return
	}
	if req.Status != StatusPresent && req.Status != StatusMissing {
		c.JSON(http.StatusBadRequest, gin.H{"error": "状态必须是 present 或 missing"})
		return
	}

	entry, err := SetSpellbookSpellStatus(id, profile.CurrentIdentity(c).ID, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RemoveSpellbookSpellHandler 从法术书中删除一页
func RemoveSpellbookSpellHandler(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := RemoveSpellbookSpell(id, profile.CurrentIdentity(c).ID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
