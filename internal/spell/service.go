package spell

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/kobstaw/kanty-grimoire-backend/pkg/dberr"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrValidation 表示提交的数据未通过本地必填检查，请求不应到达持久层
var ErrValidation = errors.New("数据校验失败")

// ErrNotFound 表示按ID找不到对应条目
var ErrNotFound = errors.New("条目不存在")

// SpellInput 是创建和编辑条目时的提交数据
type SpellInput struct {
	Type        string `json:"type"`
	Source      string `json:"source"`
	NameEN      string `json:"name_en"`
	NamePL      string `json:"name_pl"`
	Attribute   string `json:"attribute"`
	MinHand     string `json:"min_hand"`
	Casting     string `json:"casting"`
	Duration    string `json:"duration"`
	Range       string `json:"range"`
	Description string `json:"description"`

	// 按HandNames顺序排列的11条手牌效果；缺省按空字符串处理
	HandEffects []string `json:"hand_effects"`
}

// validate 执行提交前的必填检查：两个名称和来源必须非空。
// 这是仅有的数据校验，更多约束不在范围内。
func (in *SpellInput) validate() error {
	if strings.TrimSpace(in.NamePL) == "" {
		return fmt.Errorf("%w: 缺少波兰文名称", ErrValidation)
	}
	if strings.TrimSpace(in.NameEN) == "" {
		return fmt.Errorf("%w: 缺少英文名称", ErrValidation)
	}
	if strings.TrimSpace(in.Source) == "" {
		return fmt.Errorf("%w: 缺少来源", ErrValidation)
	}
	if in.Type != KindKant && in.Type != KindSztuka {
		return fmt.Errorf("%w: 类型必须是 %s 或 %s", ErrValidation, KindKant, KindSztuka)
	}
	return nil
}

// effectAt 取第i条手牌效果，越界按空字符串处理
func (in *SpellInput) effectAt(i int) string {
	if i < len(in.HandEffects) {
		return in.HandEffects[i]
	}
	return ""
}

// applyTo 把提交数据写入持久化模型。
// sztuka条目的奇术专属字段和效果列全部清空，与旧迁移脚本的行为一致。
func (in *SpellInput) applyTo(s *Spell) {
	s.Type = in.Type
	s.Source = in.Source
	s.NameEN = in.NameEN
	s.NamePL = in.NamePL
	s.Attribute = in.Attribute

	if in.Type == KindSztuka {
		s.MinHand = ""
		s.Casting = ""
		s.Duration = ""
		s.Range = ""
		s.EffectAce = ""
		s.EffectPair = ""
		s.EffectFacePair = ""
		s.EffectTwoPair = ""
		s.EffectThreeOfKind = ""
		s.EffectStraight = ""
		s.EffectFlush = ""
		s.EffectFullHouse = ""
		s.EffectFourOfKind = ""
		s.EffectPoker = ""
		s.EffectRoyalPoker = ""
	} else {
		s.MinHand = in.MinHand
		s.Casting = in.Casting
		s.Duration = in.Duration
		s.Range = in.Range
		s.EffectAce = in.effectAt(0)
		s.EffectPair = in.effectAt(1)
		s.EffectFacePair = in.effectAt(2)
		s.EffectTwoPair = in.effectAt(3)
		s.EffectThreeOfKind = in.effectAt(4)
		s.EffectStraight = in.effectAt(5)
		s.EffectFlush = in.effectAt(6)
		s.EffectFullHouse = in.effectAt(7)
		s.EffectFourOfKind = in.effectAt(8)
		s.EffectPoker = in.effectAt(9)
		s.EffectRoyalPoker = in.effectAt(10)
	}

	s.Description = in.Description
}

// --- 查询服务 ---

// ListView 对当前工作集执行一次视图推导
func ListView(q Query) []Record {
	return DeriveView(Snapshot(), q)
}

// SuggestRecords 为自动补全返回建议列表
func SuggestRecords(partial string, limit int) []Record {
	return Suggest(Snapshot(), partial, limit)
}

// GetRecordDetail 获取单个条目的视图模型。
// Redis健康时从信息缓存读取，否则退回到内存仓库。
func GetRecordDetail(id uint) (Record, error) {
	if database.RDB != nil && database.IsRedisHealthy() {
		infoJSON, err := database.RDB.HGet(database.Ctx, InfoKey, strconv.FormatUint(uint64(id), 10)).Result()
		if err == nil {
			var r Record
			if err := json.Unmarshal([]byte(infoJSON), &r); err != nil {
				return Record{}, fmt.Errorf("无法解析条目 %d 的缓存数据: %w", id, err)
			}
			// 小写缓存不进JSON，读出后重新计算
			r.NamePLLower = strings.ToLower(r.NamePL)
			r.NameENLower = strings.ToLower(r.NameEN)
			return r, nil
		}
		if err == redis.Nil {
			return Record{}, ErrNotFound
		}
		// Redis读取出错时退回内存仓库
	}

	if r, ok := GetRecordByID(id); ok {
		return r, nil
	}
	return Record{}, ErrNotFound
}

// GetSpellModel 按ID读取持久化模型，供权限判定和编辑流程使用
func GetSpellModel(id uint) (*Spell, error) {
	var s Spell
	if err := database.DB.First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// --- 写入服务 ---
// 每次成功写入后整体重载内存仓库并重建Redis信息缓存。

// CreateSpell 创建一条用户自有条目
func CreateSpell(input SpellInput, ownerID string) (Record, error) {
	if err := input.validate(); err != nil {
		return Record{}, err
	}

	var s Spell
	input.applyTo(&s)
	s.CreatedBy = ownerID

	if err := database.DB.Create(&s).Error; err != nil {
		return Record{}, dberr.Classify(err)
	}

	refreshAfterWrite()
	return ToViewModel(&s), nil
}

// UpdateSpell 更新一条已有条目。权限检查由调用方负责。
func UpdateSpell(id uint, input SpellInput) (Record, error) {
	if err := input.validate(); err != nil {
		return Record{}, err
	}

	s, err := GetSpellModel(id)
	if err != nil {
		return Record{}, err
	}

	input.applyTo(s)
	if err := database.DB.Save(s).Error; err != nil {
		return Record{}, dberr.Classify(err)
	}

	refreshAfterWrite()
	return ToViewModel(s), nil
}

// DeleteSpell 删除一条条目。权限检查由调用方负责。
func DeleteSpell(id uint) error {
	s, err := GetSpellModel(id)
	if err != nil {
		return err
	}

	if err := database.DB.Delete(s).Error; err != nil {
		return err
	}

	refreshAfterWrite()
	return nil
}

// refreshAfterWrite 在写操作成功后刷新内存仓库和Redis缓存。
// 刷新失败只记录日志：数据库已是权威状态，缓存会由健康检查兜底重建。
func refreshAfterWrite() {
	if err := ReloadRepository(); err != nil {
		fmt.Printf("警告: 写入后重载内存仓库失败: %v\n", err)
		return
	}
	if err := WarmupCache(); err != nil {
		fmt.Printf("警告: 写入后重建条目缓存失败: %v\n", err)
	}
}
