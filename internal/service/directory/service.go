package directory

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/smpn1padarincang/presensi-backend-go/internal/domain/directory"
)

type DirectoryServiceImpl struct {
	directory.DirectoryRepository

	mu      sync.RWMutex
	roster  []directory.Person
	source  directory.Source
	applied uint64

	issued atomic.Uint64
}

func NewDirectoryService(repo directory.DirectoryRepository) directory.DirectoryService {
	return &DirectoryServiceImpl{
		DirectoryRepository: repo,
		source:              directory.SourceSample,
	}
}

// Refresh implements directory.DirectoryService. Each refresh takes a ticket
// before fetching; a fetch that finishes after a younger one has already been
// applied is discarded, so slow responses never roll the roster backwards.
func (s *DirectoryServiceImpl) Refresh(ctx context.Context) error {
	ticket := s.issued.Add(1)

	people, source, err := s.DirectoryRepository.FetchDirectory(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if ticket <= s.applied {
		return nil
	}
	s.roster = people
	s.source = source
	s.applied = ticket
	return nil
}

// Roster implements directory.DirectoryService.
func (s *DirectoryServiceImpl) Roster(ctx context.Context) ([]directory.Person, directory.Source) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roster, s.source
}

// Teachers implements directory.DirectoryService.
func (s *DirectoryServiceImpl) Teachers(ctx context.Context) []directory.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()

	teachers := make([]directory.Person, 0, len(s.roster))
	for _, p := range s.roster {
		if !p.IsAdministrative() {
			teachers = append(teachers, p)
		}
	}
	return teachers
}

// FindByUsername implements directory.DirectoryService.
func (s *DirectoryServiceImpl) FindByUsername(ctx context.Context, username string) (directory.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.roster {
		if strings.EqualFold(p.Username, username) {
			return p, nil
		}
	}
	return directory.Person{}, directory.ErrPersonNotFound
}
