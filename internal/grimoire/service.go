package grimoire

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ErrNotFound 表示按ID找不到对应实体
var ErrNotFound = errors.New("实体不存在")

// ErrNotOwner 表示访问者不是实体的所属用户。
// 角色及其名下数据只有所属用户本人可以操作，管理员也不例外。
var ErrNotOwner = errors.New("没有权限操作该实体")

// ErrToggleInFlight 表示同一条奇术的上一次切换尚未完成
var ErrToggleInFlight = errors.New("该奇术的切换操作正在进行中")

// --- 角色 ---

// CreateCharacter 为用户创建一个新角色
func CreateCharacter(ownerID, name, imageURL string) (*Character, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("角色名不能为空")
	}
	ch := Character{OwnerID: ownerID, Name: name, ImageURL: imageURL}
	if err := database.DB.Create(&ch).Error; err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListCharacters 返回用户名下的全部角色
func ListCharacters(ownerID string) ([]Character, error) {
	var chars []Character
	if err := database.DB.Where("owner_id = ?", ownerID).
		Order("created_at asc").Find(&chars).Error; err != nil {
		return nil, err
	}
	return chars, nil
}

// GetOwnedCharacter 读取角色并校验所属用户
func GetOwnedCharacter(id uint, ownerID string) (*Character, error) {
	var ch Character
	if err := database.DB.First(&ch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ch.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return &ch, nil
}

// DeleteCharacter 删除角色及其名下的已知列表、法术书和书页
func DeleteCharacter(id uint, ownerID string) error {
	ch, err := GetOwnedCharacter(id, ownerID)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		var books []Spellbook
		if err := tx.Where("character_id = ?", ch.ID).Find(&books).Error; err != nil {
			return err
		}
		for _, b := range books {
			if err := tx.Where("spellbook_id = ?", b.ID).Delete(&SpellbookSpell{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("character_id = ?", ch.ID).Delete(&Spellbook{}).Error; err != nil {
			return err
		}
		if err := tx.Where("character_id = ?", ch.ID).Delete(&KnownSpell{}).Error; err != nil {
			return err
		}
		return tx.Delete(ch).Error
	})
}

// --- 已知奇术 ---

// ListKnownSpells 返回角色的已知列表，按显示顺序排列
func ListKnownSpells(characterID uint) ([]KnownSpell, error) {
	var entries []KnownSpell
	if err := database.DB.Where("character_id = ?", characterID).
		Order("sort_order asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// toggleKeys 构造切换闩的钥匙：每个非空名称各占一把。
// 只带波兰文名和同时带两个名称的请求会共享波兰文名那把钥匙，
// 因此用不同名称形式指向同一条目的切换照样互斥。
func toggleKeys(characterID uint, namePL, nameEN string) []string {
	var keys []string
	if pl := normalizeName(namePL); pl != "" {
		keys = append(keys, fmt.Sprintf("%d|pl|%s", characterID, pl))
	}
	if en := normalizeName(nameEN); en != "" {
		keys = append(keys, fmt.Sprintf("%d|en|%s", characterID, en))
	}
	return keys
}

// ToggleKnownSpell 切换角色对一条奇术的已知状态：
// 名称匹配到已有记录则删除，否则追加到列表末尾。
// 同一(角色, 条目)组合同时最多允许一次在途切换，重叠请求返回ErrToggleInFlight。
func ToggleKnownSpell(characterID uint, namePL, nameEN string) (added bool, err error) {
	keys := toggleKeys(characterID, namePL, nameEN)
	if !globalToggleLatch.tryAcquireAll(keys) {
		return false, ErrToggleInFlight
	}
	defer globalToggleLatch.releaseAll(keys)

	entries, err := ListKnownSpells(characterID)
	if err != nil {
		return false, err
	}

	pl := normalizeName(namePL)
	en := normalizeName(nameEN)
	for i := range entries {
		matchesPL := pl != "" && pl == normalizeName(entries[i].SpellNamePL)
		matchesEN := en != "" && en == normalizeName(entries[i].SpellNameEN)
		if matchesPL || matchesEN {
			if err := database.DB.Delete(&entries[i]).Error; err != nil {
				return false, err
			}
			return false, nil
		}
	}

	next := 1
	if len(entries) > 0 {
		next = entries[len(entries)-1].SortOrder + 1
	}
	entry := KnownSpell{
		CharacterID: characterID,
		SpellNamePL: namePL,
		SpellNameEN: nameEN,
		SortOrder:   next,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ReorderKnownSpells 按新的显示顺序持久化角色的已知列表。
// 无论成功与否都返回存储中的权威顺序；部分失败时err包装ErrConsistency，
// 调用方应以返回的权威顺序覆盖客户端的乐观状态。
func ReorderKnownSpells(ctx context.Context, characterID uint, ids []uint) ([]KnownSpell, error) {
	persistErr := PersistOrder(ctx, gormOrderWriter{characterID: characterID}, ids)

	entries, loadErr := ListKnownSpells(characterID)
	if loadErr != nil {
		if persistErr != nil {
			return nil, fmt.Errorf("重新加载权威顺序失败 (%v)，原始错误: %w", loadErr, persistErr)
		}
		return nil, loadErr
	}
	return entries, persistErr
}

// --- 法术书 ---

// CreateSpellbook 在角色名下创建一本法术书
func CreateSpellbook(characterID uint, name string, reliability int) (*Spellbook, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("法术书名不能为空")
	}
	if reliability <= 0 {
		reliability = 1
	}
	book := Spellbook{CharacterID: characterID, Name: name, Reliability: reliability}
	if err := database.DB.Create(&book).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// ListSpellbooks 返回角色名下的全部法术书
func ListSpellbooks(characterID uint) ([]Spellbook, error) {
	var books []Spellbook
	if err := database.DB.Where("character_id = ?", characterID).
		Order("created_at asc").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// GetOwnedSpellbook 读取法术书并校验其所属角色归访问者所有
func GetOwnedSpellbook(id uint, ownerID string) (*Spellbook, error) {
	var book Spellbook
	if err := database.DB.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := GetOwnedCharacter(book.CharacterID, ownerID); err != nil {
		return nil, err
	}
	return &book, nil
}

// DeleteSpellbook 删除法术书及其全部书页
func DeleteSpellbook(id uint, ownerID string) error {
	book, err := GetOwnedSpellbook(id, ownerID)
	if err != nil {
		return err
	}
	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spellbook_id = ?", book.ID).Delete(&SpellbookSpell{}).Error; err != nil {
			return err
		}
		return tx.Delete(book).Error
	})
}

// ListSpellbookSpells 返回法术书的全部书页
func ListSpellbookSpells(spellbookID uint) ([]SpellbookSpell, error) {
	var entries []SpellbookSpell
	if err := database.DB.Where("spellbook_id = ?", spellbookID).
		Order("created_at asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// AddSpellbookSpell 往法术书里添加一页
func AddSpellbookSpell(spellbookID uint, namePL, nameEN, status string) (*SpellbookSpell, error) {
	if status != StatusPresent && status != StatusMissing {
		status = StatusPresent
	}
	entry := SpellbookSpell{
		SpellbookID: spellbookID,
		SpellNamePL: namePL,
		SpellNameEN: nameEN,
		Status:      status,
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// SetSpellbookSpellStatus 翻转书页的在册/缺失状态
func SetSpellbookSpellStatus(entryID uint, ownerID, status string) (*SpellbookSpell, error) {
	if status != StatusPresent && status != StatusMissing {
		return nil, fmt.Errorf("状态必须是 %s 或 %s", StatusPresent, StatusMissing)
	}

	var entry SpellbookSpell
	if err := database.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if _, err := GetOwnedSpellbook(entry.SpellbookID, ownerID); err != nil {
		return nil, err
	}

	entry.Status = status
	if err := database.DB.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// RemoveSpellbookSpell 从法术书中删除一页
func RemoveSpellbookSpell(entryID uint, ownerID string) error {
	var entry SpellbookSpell
	if err := database.DB.First(&entry, entryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if _, err := GetOwnedSpellbook(entry.SpellbookID, ownerID); err != nil {
		return err
	}
	return database.DB.Delete(&entry).Error
}
