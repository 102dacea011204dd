package repository

import (
	"path/filepath"
	"testing"

	"newscheck/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

func getSource(t *testing.T, db *gorm.DB, name string) *models.Source {
	t.Helper()

	var source models.Source
	if err := db.Where("name = ?", name).First(&source).Error; err != nil {
		t.Fatalf("查询来源失败: %v", err)
	}
	return &source
}

func TestRecordVerdictSeedFake(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	if err := repo.RecordVerdict("BBC", true); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}

	source := getSource(t, db, "BBC")
	if source.TotalChecks != 1 || source.FakeCount != 1 {
		t.Errorf("counters = %d/%d, want 1/1", source.TotalChecks, source.FakeCount)
	}
	if source.ReliabilityScore != 0 {
		t.Errorf("score = %v, want 0", source.ReliabilityScore)
	}
	// 种子行不标记不可信,即使首个判定为FAKE
	if source.IsUnreliable {
		t.Error("seed row must not be marked unreliable")
	}
}

func TestRecordVerdictSeedReal(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	if err := repo.RecordVerdict("Reuters", false); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}

	source := getSource(t, db, "Reuters")
	if source.TotalChecks != 1 || source.FakeCount != 0 {
		t.Errorf("counters = %d/%d, want 1/0", source.TotalChecks, source.FakeCount)
	}
	if source.ReliabilityScore != 100 {
		t.Errorf("score = %v, want 100", source.ReliabilityScore)
	}
	if source.IsUnreliable {
		t.Error("seed row must not be marked unreliable")
	}
}

func TestRecordVerdictIncrement(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	// 预置 total=3, fake=1
	seed := &models.Source{Name: "The Daily", TotalChecks: 3, FakeCount: 1, ReliabilityScore: 66.67}
	if err := db.Create(seed).Error; err != nil {
		t.Fatalf("预置来源失败: %v", err)
	}

	if err := repo.RecordVerdict("The Daily", false); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}

	source := getSource(t, db, "The Daily")
	if source.TotalChecks != 4 || source.FakeCount != 1 {
		t.Errorf("counters = %d/%d, want 4/1", source.TotalChecks, source.FakeCount)
	}
	if source.ReliabilityScore != 75.00 {
		t.Errorf("score = %v, want 75.00", source.ReliabilityScore)
	}
	if source.IsUnreliable {
		t.Error("75%% reliable source must not be unreliable")
	}
}

func TestRecordVerdictAllFakeBecomesUnreliable(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	// 种子: 1/1 (100% fake), 再记一次FAKE
	if err := repo.RecordVerdict("Hoax Weekly", true); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}
	if err := repo.RecordVerdict("Hoax Weekly", true); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}

	source := getSource(t, db, "Hoax Weekly")
	if source.TotalChecks != 2 || source.FakeCount != 2 {
		t.Errorf("counters = %d/%d, want 2/2", source.TotalChecks, source.FakeCount)
	}
	if source.ReliabilityScore != 0 {
		t.Errorf("score = %v, want 0", source.ReliabilityScore)
	}
	if !source.IsUnreliable {
		t.Error("fully fake source must be unreliable after update")
	}
}

func TestRecordVerdictScoreRounding(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	// 2 REAL + 1 FAKE = 66.67
	for _, isFake := range []bool{false, false, true} {
		if err := repo.RecordVerdict("Mixed News", isFake); err != nil {
			t.Fatalf("RecordVerdict() error = %v", err)
		}
	}

	source := getSource(t, db, "Mixed News")
	if source.ReliabilityScore != 66.67 {
		t.Errorf("score = %v, want 66.67", source.ReliabilityScore)
	}
	if source.IsUnreliable {
		t.Error("66.67%% reliable source must not be unreliable")
	}
}

func TestRecordVerdictCaseSensitiveNames(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	if err := repo.RecordVerdict("BBC", false); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}
	if err := repo.RecordVerdict("bbc", false); err != nil {
		t.Fatalf("RecordVerdict() error = %v", err)
	}

	// 名称不做大小写归一,两行独立
	var count int64
	db.Model(&models.Source{}).Count(&count)
	if count != 2 {
		t.Errorf("source rows = %d, want 2", count)
	}
}

func TestListByChecksOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := NewSourceRepository(db)

	for name, checks := range map[string]int{"A": 1, "B": 5, "C": 3} {
		if err := db.Create(&models.Source{Name: name, TotalChecks: checks}).Error; err != nil {
			t.Fatalf("预置来源失败: %v", err)
		}
	}

	sources, err := repo.ListByChecks(50)
	if err != nil {
		t.Fatalf("ListByChecks() error = %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("len = %d, want 3", len(sources))
	}
	if sources[0].Name != "B" || sources[1].Name != "C" || sources[2].Name != "A" {
		t.Errorf("order = %s,%s,%s, want B,C,A", sources[0].Name, sources[1].Name, sources[2].Name)
	}
}
