package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"observatory/internal/config"
	"observatory/internal/database"
	"observatory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var base = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the :memory: database alive across queries.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...))
	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:             "test",
		ReportDir:       t.TempDir(),
		AnalysisWorkers: 4,
		EnablePOS:       false,
		EnableAnomaly:   true,
		Thresholds:      config.DefaultThresholds(),
	}
}

func stamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

// seedScenario loads three unmistakable personas plus the bystanders whose
// posts they react to.
func seedScenario(t *testing.T, db *gorm.DB) {
	t.Helper()

	// Posts by bystanders, answered by clockwork 15 seconds later.
	for i := 0; i < 3; i++ {
		post := models.Post{
			ID:        fmt.Sprintf("post-%d", i),
			Author:    fmt.Sprintf("bystander%d", i),
			Title:     "thread",
			Content:   "a question about the network",
			CreatedAt: stamp(base.Add(time.Duration(i) * time.Hour)),
		}
		require.NoError(t, db.Create(&post).Error)

		comment := models.Comment{
			ID:        fmt.Sprintf("cw-%d", i),
			PostID:    post.ID,
			Author:    "clockwork",
			Content:   "sounds reasonable to me",
			CreatedAt: stamp(base.Add(time.Duration(i)*time.Hour + 15*time.Second)),
		}
		require.NoError(t, db.Create(&comment).Error)
	}

	// nightowl answers two hours later and only during the workday.
	for i := 0; i < 5; i++ {
		post := models.Post{
			ID:        fmt.Sprintf("slow-post-%d", i),
			Author:    fmt.Sprintf("bystander%d", i),
			Title:     "thread",
			Content:   "another question",
			CreatedAt: stamp(base.AddDate(0, 0, i)),
		}
		require.NoError(t, db.Create(&post).Error)

		// Short comments keep the corpus under the stylometric minimum, so
		// the verdict rests on timing and hours alone.
		comment := models.Comment{
			ID:        fmt.Sprintf("no-%d", i),
			PostID:    post.ID,
			Author:    "nightowl",
			Content:   "worth a closer look",
			CreatedAt: stamp(base.AddDate(0, 0, i).Add(2 * time.Hour)),
		}
		require.NoError(t, db.Create(&comment).Error)
	}
	for i := 0; i < 6; i++ {
		post := models.Post{
			ID:        fmt.Sprintf("no-post-%d", i),
			Author:    "nightowl",
			Title:     "notes",
			CreatedAt: stamp(base.AddDate(0, 0, 10+i).Add(time.Duration(i%4) * time.Hour)),
		}
		require.NoError(t, db.Create(&post).Error)
	}

	// minter only ever posts structured mint commands.
	for i := 0; i < 4; i++ {
		post := models.Post{
			ID:        fmt.Sprintf("mint-%d", i),
			Author:    "minter",
			Title:     "mint",
			Content:   `{"p":"mbc-20","op":"mint","tick":"moon","amt":"1000"}`,
			CreatedAt: stamp(base.Add(time.Duration(i) * time.Minute)),
		}
		require.NoError(t, db.Create(&post).Error)
	}
}

func TestRun_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	seedScenario(t, db)
	cfg := testConfig(t)

	runner, err := NewRunner(cfg, db)
	require.NoError(t, err)

	report, err := runner.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	// Small corpus: every optional corpus-wide pass degrades explicitly.
	assert.False(t, report.Capabilities["graph"])
	assert.False(t, report.Capabilities["burst"])
	assert.False(t, report.Capabilities["anomaly"])
	assert.False(t, report.Capabilities["pos"])

	byAuthor := make(map[string]models.Classification)
	for _, c := range report.Results {
		byAuthor[c.Author] = c
	}

	clockwork := byAuthor["clockwork"]
	assert.Equal(t, models.VerdictAIAgent, clockwork.Verdict)
	assert.GreaterOrEqual(t, clockwork.Confidence, 0.6)

	nightowl := byAuthor["nightowl"]
	assert.Equal(t, models.VerdictHumanOperator, nightowl.Verdict)
	assert.GreaterOrEqual(t, nightowl.Confidence, 0.6)

	minter := byAuthor["minter"]
	assert.Equal(t, models.VerdictScriptedBot, minter.Verdict)
	assert.Equal(t, 0.95, minter.Confidence)

	// Bystanders have nothing measurable.
	assert.Equal(t, models.VerdictUnknown, byAuthor["bystander0"].Verdict)

	// Results are ordered and counted consistently.
	for i := 1; i < len(report.Results); i++ {
		assert.Less(t, report.Results[i-1].Author, report.Results[i].Author)
	}
	total := 0
	for _, n := range report.Counts {
		total += n
	}
	assert.Equal(t, report.AccountCount, total)

	// Write-back created actor rows for every analyzed author.
	var actorCount int64
	require.NoError(t, db.Model(&models.Actor{}).Count(&actorCount).Error)
	assert.Equal(t, int64(report.AccountCount), actorCount)

	// The report survived the swap and reads back identically.
	stored, err := NewReportWriter(cfg.ReportDir).Latest()
	require.NoError(t, err)
	assert.Equal(t, report.RunID, stored.RunID)
	assert.Equal(t, report.AccountCount, stored.AccountCount)
}

func TestRun_IsIdempotentAcrossRuns(t *testing.T) {
	db := newTestDB(t)
	seedScenario(t, db)
	cfg := testConfig(t)

	runner, err := NewRunner(cfg, db)
	require.NoError(t, err)

	first, err := runner.Run(context.Background())
	require.NoError(t, err)
	second, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.AccountCount, second.AccountCount)
	assert.Equal(t, first.Counts, second.Counts)

	// Write-back overwrites, never accumulates.
	var actorCount int64
	require.NoError(t, db.Model(&models.Actor{}).Count(&actorCount).Error)
	assert.Equal(t, int64(first.AccountCount), actorCount)
}

func TestReportWriter_SwapAndRunCopies(t *testing.T) {
	dir := t.TempDir()
	w := NewReportWriter(dir)

	_, err := w.Latest()
	assert.Error(t, err)

	first := &models.RunReport{RunID: "run-1", GeneratedAt: base, AccountCount: 3}
	require.NoError(t, w.Write(first))
	second := &models.RunReport{RunID: "run-2", GeneratedAt: base.Add(time.Hour), AccountCount: 4}
	require.NoError(t, w.Write(second))

	latest, err := w.Latest()
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest.RunID)
	assert.Equal(t, 4, latest.AccountCount)

	assert.FileExists(t, dir+"/report-run-1.json")
	assert.FileExists(t, dir+"/report-run-2.json")
}

func TestHourShape(t *testing.T) {
	uniformity, night := hourShape(nil)
	assert.Zero(t, uniformity)
	assert.Zero(t, night)

	stamps := []time.Time{
		time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 3, 30, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC),
	}
	uniformity, night = hourShape(stamps)
	assert.InDelta(t, 0.5, night, 1e-9)
	assert.Greater(t, uniformity, 0.0)
	assert.Less(t, uniformity, 1.0)
}
