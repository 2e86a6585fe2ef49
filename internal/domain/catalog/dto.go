package catalog

// CategoryRequest represents a category create/update submission
type CategoryRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Position int    `json:"position" validate:"gte=0,lte=1000"`
}

// ServiceRequest represents a service create/update submission
type ServiceRequest struct {
	CategoryID      int64   `json:"category_id" validate:"required,gt=0"`
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=5,lte=480"`
	Price           float64 `json:"price" validate:"gte=0"`
	Active          *bool   `json:"active"`
}

// ExtraServiceRequest represents an extra service create/update submission
type ExtraServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=5,lte=240"`
	Price           float64 `json:"price" validate:"gte=0"`
	Active          *bool   `json:"active"`
}

func (req *ServiceRequest) toEntity(id int64) *Service {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &Service{
		ID:              id,
		CategoryID:      req.CategoryID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          active,
	}
}

func (req *ExtraServiceRequest) toEntity(id int64) *ExtraService {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &ExtraService{
		ID:              id,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          active,
	}
}
