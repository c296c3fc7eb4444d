package spell

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/kobstaw/kanty-grimoire-backend/pkg/dberr"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB 把全局数据库指向一个临时的SQLite文件，并重载内存仓库
func setupTestDB(t *testing.T) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "spells_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&Spell{}); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	if err := ReloadRepository(); err != nil {
		t.Fatalf("重载内存仓库失败: %v", err)
	}
}

func kantInput(namePL, nameEN string) SpellInput {
	return SpellInput{
		Type:        KindKant,
		Source:      "Core",
		NamePL:      namePL,
		NameEN:      nameEN,
		Attribute:   "Spryt",
		MinHand:     "Para",
		Casting:     "1 akcja",
		Duration:    "1 runda",
		Range:       "Dotyk",
		HandEffects: []string{"efekt asa"},
	}
}

func TestCreateSpellValidation(t *testing.T) {
	setupTestDB(t)

	cases := []SpellInput{
		{Type: KindKant, Source: "Core", NameEN: "X"},              // 缺少波兰文名
		{Type: KindKant, Source: "Core", NamePL: "X"},              // 缺少英文名
		{Type: KindKant, NamePL: "X", NameEN: "X"},                 // 缺少来源
		{Type: "zaklęcie", Source: "Core", NamePL: "X", NameEN: "X"}, // 未知类型
	}
	for i, in := range cases {
		if _, err := CreateSpell(in, "uuid-1"); !errors.Is(err, ErrValidation) {
			t.Fatalf("用例 %d 应返回ErrValidation: %v", i, err)
		}
	}
	if RecordCount() != 0 {
		t.Fatalf("校验失败的提交不应到达持久层")
	}
}

func TestCreateSpellRefreshesRepository(t *testing.T) {
	setupTestDB(t)

	r, err := CreateSpell(kantInput("Czarna Dama", "Black Queen"), "uuid-1")
	if err != nil {
		t.Fatalf("创建条目失败: %v", err)
	}
	if r.OwnerID != "uuid-1" {
		t.Fatalf("创建者应被记录为条目所有者，得到 %q", r.OwnerID)
	}

	// 写入成功后内存仓库整体重载，新条目立即可见
	got := ListView(Query{SearchText: "czarna"})
	if len(got) != 1 || got[0].ID != r.ID {
		t.Fatalf("新条目应出现在视图中: %v", got)
	}

	sources, attributes := FilterOptions()
	if len(sources) != 1 || sources[0] != "Core" {
		t.Fatalf("来源选项应被重新派生: %v", sources)
	}
	if len(attributes) != 1 || attributes[0] != "Spryt" {
		t.Fatalf("特性选项应被重新派生: %v", attributes)
	}
}

func TestCreateSpellDuplicateNamesConflict(t *testing.T) {
	setupTestDB(t)

	if _, err := CreateSpell(kantInput("Dubel", "Double"), "uuid-1"); err != nil {
		t.Fatalf("第一次创建应成功: %v", err)
	}

	_, err := CreateSpell(kantInput("Dubel", "Double"), "uuid-2")
	if !errors.Is(err, dberr.ErrConflict) {
		t.Fatalf("同名条目应被判定为唯一约束冲突: %v", err)
	}
}

func TestUpdateSpellSwitchToSztukaClearsFields(t *testing.T) {
	setupTestDB(t)

	r, _ := CreateSpell(kantInput("Dubel", "Double"), "uuid-1")

	in := kantInput("Dubel", "Double")
	in.Type = KindSztuka
	updated, err := UpdateSpell(r.ID, in)
	if err != nil {
		t.Fatalf("更新条目失败: %v", err)
	}

	if updated.MinHand != Placeholder || updated.Range != Placeholder {
		t.Fatalf("改为sztuka后四个专属字段应变为占位符: %+v", updated)
	}

	// 持久层的效果列也必须被清空
	s, err := GetSpellModel(r.ID)
	if err != nil {
		t.Fatalf("读取模型失败: %v", err)
	}
	if s.MinHand != "" || s.EffectAce != "" {
		t.Fatalf("sztuka的专属字段和效果列应被清空: %+v", s)
	}
}

func TestDeleteSpellRemovesFromView(t *testing.T) {
	setupTestDB(t)

	r, _ := CreateSpell(kantInput("Dubel", "Double"), "uuid-1")
	if err := DeleteSpell(r.ID); err != nil {
		t.Fatalf("删除条目失败: %v", err)
	}

	if RecordCount() != 0 {
		t.Fatalf("删除后工作集应为空")
	}
	if err := DeleteSpell(r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("重复删除应返回ErrNotFound: %v", err)
	}
}

func TestGetRecordDetailFallsBackToRepository(t *testing.T) {
	setupTestDB(t)

	// 测试环境没有Redis，单条查询应走内存仓库
	r, _ := CreateSpell(kantInput("Dubel", "Double"), "uuid-1")

	got, err := GetRecordDetail(r.ID)
	if err != nil || got.ID != r.ID {
		t.Fatalf("应从内存仓库取到条目: %+v %v", got, err)
	}
	if _, err := GetRecordDetail(99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("不存在的ID应返回ErrNotFound: %v", err)
	}
}

func TestRepositoryOrderedByNamePL(t *testing.T) {
	setupTestDB(t)

	CreateSpell(kantInput("Złoty Strzał", "Golden Shot"), "")
	CreateSpell(kantInput("Amulet", "Amulet"), "")

	records := Snapshot()
	if len(records) != 2 || records[0].NamePL != "Amulet" {
		t.Fatalf("工作集应按波兰文名升序排列: %v", records)
	}
}
