package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedCharacter is a seeded character with the code of its unit.
type SeedCharacter struct {
	Character
	UnitCode string
}

// SeedUnits are the units created by Seed.
var SeedUnits = []Unit{
	{Code: "vs", Name: "VIRTUAL SINGER", ShortName: "VS", Color: "#33CCBB", BgColor: "#E0F7F4", Priority: 0},
	{Code: "ln", Name: "Leo/need", ShortName: "L/n", Color: "#4455DD", BgColor: "#E3E6FA", Priority: 1},
	{Code: "mmj", Name: "MORE MORE JUMP!", ShortName: "MMJ", Color: "#88DD44", BgColor: "#EEF9E3", Priority: 2},
	{Code: "vbs", Name: "Vivid BAD SQUAD", ShortName: "VBS", Color: "#EE1166", BgColor: "#FCE2EC", Priority: 3},
	{Code: "ws", Name: "Wonderlands×Showtime", ShortName: "WxS", Color: "#FF9900", BgColor: "#FFF1DD", Priority: 4},
	{Code: "25", Name: "25-ji, Nightcord de.", ShortName: "25", Color: "#884499", BgColor: "#F1E6F4", Priority: 5},
}

// SeedCharacters are the characters created by Seed.
var SeedCharacters = []SeedCharacter{
	seedCharacter("vs", "miku", "Hatsune Miku", "Miku", "#33CCBB", 1),
	seedCharacter("vs", "rin", "Kagamine Rin", "Rin", "#FFCC11", 2),
	seedCharacter("vs", "len", "Kagamine Len", "Len", "#FFEE11", 3),
	seedCharacter("vs", "luka", "Megurine Luka", "Luka", "#FFBBCC", 4),
	seedCharacter("vs", "meiko", "MEIKO", "MEIKO", "#DD4444", 5),
	seedCharacter("vs", "kaito", "KAITO", "KAITO", "#3366CC", 6),
	seedCharacter("ln", "ichika", "Hoshino Ichika", "Ichika", "#33AAEE", 7),
	seedCharacter("ln", "saki", "Tenma Saki", "Saki", "#FFDD44", 8),
	seedCharacter("ln", "honami", "Mochizuki Honami", "Honami", "#EE6666", 9),
	seedCharacter("ln", "shiho", "Hinomori Shiho", "Shiho", "#BBDD22", 10),
	seedCharacter("mmj", "minori", "Hanasato Minori", "Minori", "#FFCCAA", 11),
	seedCharacter("mmj", "haruka", "Kiritani Haruka", "Haruka", "#99CCFF", 12),
	seedCharacter("mmj", "airi", "Momoi Airi", "Airi", "#FFAACC", 13),
	seedCharacter("mmj", "shizuku", "Hinomori Shizuku", "Shizuku", "#99EEDD", 14),
	seedCharacter("vbs", "kohane", "Azusawa Kohane", "Kohane", "#FF6699", 15),
	seedCharacter("vbs", "an", "Shiraishi An", "An", "#00BBDD", 16),
	seedCharacter("vbs", "akito", "Shinonome Akito", "Akito", "#FF7722", 17),
	seedCharacter("vbs", "toya", "Aoyagi Toya", "Toya", "#0077DD", 18),
	seedCharacter("ws", "tsukasa", "Tenma Tsukasa", "Tsukasa", "#FFBB00", 19),
	seedCharacter("ws", "emu", "Otori Emu", "Emu", "#FF66BB", 20),
	seedCharacter("ws", "nene", "Kusanagi Nene", "Nene", "#33DD99", 21),
	seedCharacter("ws", "rui", "Kamishiro Rui", "Rui", "#BB88EE", 22),
	seedCharacter("25", "kanade", "Yoisaki Kanade", "Kanade", "#BB6688", 23),
	seedCharacter("25", "mafuyu", "Asahina Mafuyu", "Mafuyu", "#8888CC", 24),
	seedCharacter("25", "ena", "Shinonome Ena", "Ena", "#CCAA88", 25),
	seedCharacter("25", "mizuki", "Akiyama Mizuki", "Mizuki", "#DDAACC", 26),
}

func seedCharacter(unit, code, name, short, color string, priority int) SeedCharacter {
	return SeedCharacter{
		Character: Character{Code: code, Name: name, ShortName: short, Color: color, BgColor: color, Priority: priority},
		UnitCode:  unit,
	}
}

// SeedResult reports how many rows Seed wrote.
type SeedResult struct {
	Units      int `json:"units"`
	Characters int `json:"characters"`
}

// Seed upserts the static units and characters keyed on their code.
// Running it again updates names and colors without changing IDs.
func Seed(ctx context.Context, db *gorm.DB) (*SeedResult, error) {
	result := &SeedResult{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		units := make([]Unit, len(SeedUnits))
		copy(units, SeedUnits)

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "short_name", "color", "bg_color", "priority", "updated_at"}),
		}).Create(&units).Error; err != nil {
			return fmt.Errorf("failed to upsert units: %w", err)
		}
		result.Units = len(units)

		// IDs of existing rows are kept on conflict, so read them back
		var stored []Unit
		if err := tx.Find(&stored).Error; err != nil {
			return fmt.Errorf("failed to load units: %w", err)
		}
		unitIDs := make(map[string]string, len(stored))
		for _, u := range stored {
			unitIDs[u.Code] = u.ID
		}

		characters := make([]Character, 0, len(SeedCharacters))
		for _, sc := range SeedCharacters {
			c := sc.Character
			unitID, ok := unitIDs[sc.UnitCode]
			if !ok {
				return fmt.Errorf("unit %s missing for character %s", sc.UnitCode, c.Code)
			}
			c.UnitID = &unitID
			characters = append(characters, c)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"unit_id", "name", "short_name", "color", "bg_color", "priority", "updated_at"}),
		}).Create(&characters).Error; err != nil {
			return fmt.Errorf("failed to upsert characters: %w", err)
		}
		result.Characters = len(characters)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
