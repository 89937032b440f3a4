// Package importer backfills historical training sessions from CSV exports
// into the database, where they feed exercise history and personal records.
package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/meltforce/ironcycle/internal/models"
	"github.com/meltforce/ironcycle/internal/storage"
)

// ArchivePlanName is the plan under which all backfilled sessions live.
const ArchivePlanName = "Imported History"

// repRangeWidth widens the observed target reps into a double-progression
// window when deriving a config for an imported exercise.
const repRangeWidth = 4

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsImported int
	SetsImported     int
	WarmupsSkipped   int
}

// Importer reads CSV export files from a directory and inserts completed
// sessions into the database.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed on every run.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .csv files under dir, oldest first by name.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	for _, name := range files {
		path := filepath.Join(dir, name)
		if err := imp.importFile(ctx, path, name); err != nil {
			imp.stats.FilesErrored++
			imp.log.Error("import failed", "file", name, "error", err)
			continue
		}
	}
	return &imp.stats, nil
}

func (imp *Importer) importFile(ctx context.Context, path, relPath string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state: %w", err)
		}
		if done {
			imp.stats.FilesSkipped++
			imp.log.Debug("already imported", "file", relPath)
			return nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sessions, err := Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for i := range sessions {
		if err := imp.importSession(ctx, &sessions[i]); err != nil {
			return fmt.Errorf("session %q (%s): %w", sessions[i].Name, sessions[i].Date.Format("2006-01-02"), err)
		}
	}

	imp.stats.FilesProcessed++
	if imp.state != nil && !imp.dryRun {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("marking imported: %w", err)
		}
	}
	return nil
}

func (imp *Importer) importSession(ctx context.Context, session *Session) error {
	working := 0
	warmups := 0
	for _, ex := range session.Exercises {
		working += len(ex.WorkingSets())
		warmups += len(ex.Sets) - len(ex.WorkingSets())
	}
	imp.stats.WarmupsSkipped += warmups
	if working == 0 {
		return nil
	}

	if imp.dryRun {
		imp.stats.SessionsImported++
		imp.stats.SetsImported += working
		return nil
	}

	meso, planDayID, err := imp.db.EnsureArchive(ctx, ArchivePlanName, session.Date)
	if err != nil {
		return err
	}
	week, err := imp.db.NextArchiveWeek(ctx, meso.ID)
	if err != nil {
		return err
	}

	completedAt := session.Date
	workout := &models.Workout{
		ID:            uuid.New(),
		MesocycleID:   meso.ID,
		PlanDayID:     planDayID,
		WeekNumber:    week,
		Status:        models.WorkoutCompleted,
		ScheduledDate: session.Date,
		CompletedAt:   &completedAt,
	}
	if err := imp.db.InsertArchivedWorkout(ctx, workout); err != nil {
		return err
	}

	for _, ex := range session.Exercises {
		sets := ex.WorkingSets()
		if len(sets) == 0 {
			continue
		}

		exercise, err := imp.db.EnsureExercise(ctx, ex.FullName())
		if err != nil {
			return err
		}
		planExerciseID, err := imp.db.EnsureArchivePlanExercise(ctx, planDayID, exercise.ID, archiveConfig(ex, sets))
		if err != nil {
			return err
		}

		for i, set := range sets {
			reps, weight := set.Reps, set.Weight
			ws := &models.WorkoutSet{
				ID:             uuid.New(),
				WorkoutID:      workout.ID,
				ExerciseID:     exercise.ID,
				PlanExerciseID: planExerciseID,
				SetNumber:      i + 1,
				TargetReps:     ex.TargetReps,
				TargetWeight:   set.Weight,
				ActualReps:     &reps,
				ActualWeight:   &weight,
				Status:         models.SetCompleted,
			}
			if err := imp.db.InsertArchivedSet(ctx, ws); err != nil {
				return err
			}
			imp.stats.SetsImported++
		}
	}

	imp.stats.SessionsImported++
	imp.log.Info("session imported",
		"name", session.Name,
		"date", session.Date.Format("2006-01-02"),
		"sets", working,
	)
	return nil
}

// archiveConfig derives a progression config from the observed session so an
// imported exercise can later be used in a real plan without re-entry.
func archiveConfig(ex SessionExercise, working []SessionSet) models.ExerciseConfig {
	minReps := ex.TargetReps
	if minReps < 1 {
		minReps = 8
	}
	return models.ExerciseConfig{
		WeightIncrement: 2.5,
		MinReps:         minReps,
		MaxReps:         minReps + repRangeWidth,
		BaseWeight:      working[0].Weight,
		BaseReps:        minReps,
		BaseSets:        len(working),
	}
}
