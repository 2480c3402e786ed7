package services

import (
	"context"
	"fmt"
)

// IntegrityService repairs derived course fields written outside the services
// and reports dangling category references.
type IntegrityService struct {
	courses CourseRepository
	log     Logger
}

func NewIntegrityService(courses CourseRepository, logger Logger) *IntegrityService {
	return &IntegrityService{courses: courses, log: logger}
}

type SweepReport struct {
	RepairedPublishedFlags int64    `json:"repairedPublishedFlags"`
	OrphanedCategoryIDs    []string `json:"orphanedCategoryIds"`
}

func (s *IntegrityService) Sweep(ctx context.Context) (*SweepReport, error) {
	repaired, err := s.courses.RepairPublishedFlags(ctx)
	if err != nil {
		s.log.Errorf("[INTEGRITY] Error repairing published flags: %v", err)
		return nil, fmt.Errorf("repair published flags: %w", err)
	}

	orphans, err := s.courses.FindOrphanedCategoryIDs(ctx)
	if err != nil {
		s.log.Errorf("[INTEGRITY] Error finding orphaned courses: %v", err)
		return nil, fmt.Errorf("find orphaned category references: %w", err)
	}
	if orphans == nil {
		orphans = []string{}
	}

	if repaired > 0 {
		s.log.Infof("[INTEGRITY] Repaired isPublished on %d courses", repaired)
	}
	for _, id := range orphans {
		s.log.Errorf("[INTEGRITY] Courses reference missing category %s", id)
	}

	return &SweepReport{RepairedPublishedFlags: repaired, OrphanedCategoryIDs: orphans}, nil
}
