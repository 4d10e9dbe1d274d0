package service

import (
	"context"

	"github.com/digitalget/services-site/internal/core/domain"
	"github.com/digitalget/services-site/internal/core/ports"
)

// Public data pages. login, register, account and contact are handled by
// dedicated handlers and carry no query context.
const (
	PageHome     = "home"
	PageAbout    = "about"
	PageServices = "services"
	PageProjects = "projects"
	PageTeam     = "team"
)

// SiteService assembles read-only page data for the public site. Every
// listing shows only visible rows, most recent first.
type SiteService struct {
	entities ports.EntityRepository
	staff    ports.StaffRepository
}

func NewSiteService(entities ports.EntityRepository, staff ports.StaffRepository) *SiteService {
	return &SiteService{entities: entities, staff: staff}
}

func (s *SiteService) BuildPageContext(ctx context.Context, page string) (map[string]any, error) {
	switch page {
	case PageHome:
		domains, err := s.entities.ListByKind(ctx, domain.KindHomeDomain, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{"domains": domains}, nil

	case PageAbout:
		members, err := s.entities.ListByKind(ctx, domain.KindAboutMember, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{"members": members}, nil

	case PageServices:
		services, err := s.entities.ListByKind(ctx, domain.KindService, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{"services": services}, nil

	case PageProjects:
		projects, err := s.entities.ListByKind(ctx, domain.KindProject, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{"projects": projects}, nil

	case PageTeam:
		staff, err := s.staff.List(ctx, true)
		if err != nil {
			return nil, err
		}
		members, err := s.entities.ListByKind(ctx, domain.KindTeamMember, false)
		if err != nil {
			return nil, err
		}
		return map[string]any{"staff": staff, "members": members}, nil
	}
	return nil, domain.ErrPageNotFound
}
