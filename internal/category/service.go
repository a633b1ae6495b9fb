package category

// Service provides read access to the seeded category set.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns every category. Errors collapse to an empty slice so the
// public endpoint stays resilient when the table is missing.
func (s *Service) List() []Category {
	out, err := s.repo.List()
	if err != nil {
		return []Category{}
	}
	return out
}

func (s *Service) GetByID(id int) (Category, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByName(name string) (Category, error) {
	return s.repo.GetByName(name)
}
