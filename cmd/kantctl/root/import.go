package root

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/kobstaw/kanty-grimoire-backend/internal/platform/database"
	"github.com/kobstaw/kanty-grimoire-backend/internal/spell"
	"github.com/spf13/cobra"
)

// batchSize 是批量插入的分批大小
const batchSize = 50

// csvRow 是一行CSV数据，按表头列名取值
type csvRow map[string]string

// readSheet 读取一个CSV表格，返回按表头映射的行列表。
// 旧表格的表头是波兰文列名，逐列取值时缺失的列按空字符串处理。
func readSheet(path string) ([]csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("无法解析CSV文件 %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	headers := records[0]
	rows := make([]csvRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(csvRow, len(headers))
		empty := true
		for i, h := range headers {
			v := ""
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			row[strings.TrimSpace(h)] = v
			if v != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// mapKant 把一行kant表格数据映射为持久化模型，包括11列手牌效果
func mapKant(row csvRow) spell.Spell {
	return spell.Spell{
		Type:              spell.KindKant,
		Source:            row["Źródło"],
		NameEN:            row["Nazwa"],
		NamePL:            row["NazwaPL"],
		Attribute:         row["Cecha"],
		MinHand:           row["Min. Ręka"],
		Casting:           row["Rzucanie"],
		Duration:          row["Czas"],
		Range:             row["Zasięg"],
		Description:       row["Opis"],
		EffectAce:         row["As"],
		EffectPair:        row["Para"],
		EffectFacePair:    row["Para Figur"],
		EffectTwoPair:     row["Dwie Pary"],
		EffectThreeOfKind: row["Trójka"],
		EffectStraight:    row["Strit"],
		EffectFlush:       row["Kolor"],
		EffectFullHouse:   row["Ful"],
		EffectFourOfKind:  row["Kareta"],
		EffectPoker:       row["Poker"],
		EffectRoyalPoker:  row["Królewski Poker"],
	}
}

// mapSztuka 把一行sztuczki表格数据映射为持久化模型。
// 奇术专属字段和效果列一概不取，与旧迁移脚本一致。
func mapSztuka(row csvRow) spell.Spell {
	return spell.Spell{
		Type:        spell.KindSztuka,
		Source:      row["Źródło"],
		NameEN:      row["Nazwa"],
		NamePL:      row["NazwaPL"],
		Attribute:   row["Cecha"],
		Description: row["Opis"],
	}
}

func newImportCmd() *cobra.Command {
	var wipe bool

	cmd := &cobra.Command{
		Use:   "import <kanty.csv> <sztuczki.csv>",
		Short: "从两张旧CSV表格导入基础条目数据",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setupDB(); err != nil {
				return err
			}
			if err := database.DB.AutoMigrate(&spell.Spell{}); err != nil {
				return err
			}

			kantRows, err := readSheet(args[0])
			if err != nil {
				return err
			}
			sztukaRows, err := readSheet(args[1])
			if err != nil {
				return err
			}
			fmt.Printf("读取完成: kanty %d 行, sztuczki %d 行\n", len(kantRows), len(sztukaRows))

			var all []spell.Spell
			for _, row := range kantRows {
				s := mapKant(row)
				if s.NameEN != "" || s.NamePL != "" {
					all = append(all, s)
				}
			}
			for _, row := range sztukaRows {
				s := mapSztuka(row)
				if s.NameEN != "" || s.NamePL != "" {
					all = append(all, s)
				}
			}
			fmt.Printf("待插入条目: %d\n", len(all))

			if wipe {
				// 只清除基础种子数据，用户自建条目不动
				if err := database.DB.Unscoped().
					Where("created_by = '' OR created_by IS NULL").
					Delete(&spell.Spell{}).Error; err != nil {
					return fmt.Errorf("清除旧的基础数据失败: %w", err)
				}
				fmt.Println("旧的基础数据已清除。")
			}

			inserted := 0
			for start := 0; start < len(all); start += batchSize {
				end := start + batchSize
				if end > len(all) {
					end = len(all)
				}
				batch := all[start:end]
				if err := database.DB.Create(&batch).Error; err != nil {
					// 整批失败时逐条重试，找出有问题的行
					fmt.Printf("批次 %d-%d 插入失败: %v，逐条重试...\n", start, end, err)
					for i := range batch {
						one := batch[i]
						one.ID = 0
						if err := database.DB.Create(&one).Error; err != nil {
							fmt.Printf("  跳过 %q (%s): %v\n", one.NamePL, one.NameEN, err)
						} else {
							inserted++
						}
					}
					continue
				}
				inserted += len(batch)
			}

			fmt.Printf("导入完成: 成功 %d / %d\n", inserted, len(all))
			return nil
		},
	}

	cmd.Flags().BoolVar(&wipe, "wipe", false, "导入前清除已有的基础种子数据")
	return cmd
}
