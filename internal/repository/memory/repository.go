package memory

import (
	"sync"
	"time"

	"github.com/atishaysehgal/ff/internal/analytics"
	"github.com/atishaysehgal/ff/internal/models"
)

type Repository struct {
	metadata        map[string]*models.LeagueMetadata
	directory       analytics.PlayerDirectory
	directoryLoaded time.Time
	report          map[string]*models.LeagueReport
	mu              sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{
		metadata: make(map[string]*models.LeagueMetadata),
		report:   make(map[string]*models.LeagueReport),
	}
}

func (r *Repository) SaveMetadata(metadata *models.LeagueMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.metadata[metadata.LeagueID] = metadata
}

func (r *Repository) GetMetadata(leagueID string) *models.LeagueMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.metadata[leagueID]
}

func (r *Repository) SavePlayerDirectory(dir analytics.PlayerDirectory, loadedAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.directory = dir
	r.directoryLoaded = loadedAt
}

func (r *Repository) GetPlayerDirectory() (analytics.PlayerDirectory, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.directory, r.directoryLoaded
}

// SaveReport keeps the latest league report so chat commands can answer
// without refetching every week.
func (r *Repository) SaveReport(report *models.LeagueReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.report[report.League.LeagueID] = report
}

func (r *Repository) GetReport(leagueID string) *models.LeagueReport {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.report[leagueID]
}
