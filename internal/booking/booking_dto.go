package booking

type CreateBookingRequest struct {
	EmployeeCode  string `json:"employee_code" binding:"required"`
	ResourceType  string `json:"resource_type" binding:"required"`
	Destination   string `json:"destination" binding:"required"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	TravelerCount int    `json:"traveler_count"`
	CostCenterRef string `json:"cost_center_ref"`
	TripPurpose   string `json:"trip_purpose"`
}

type BookingResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeCode  string `json:"employee_code"`
	EmployeeName  string `json:"employee_name"`
	ResourceType  string `json:"resource_type"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	TravelerCount int    `json:"traveler_count"`
	CostCenterRef string `json:"cost_center_ref"`
	TripPurpose   string `json:"trip_purpose"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
