package booking

// PlaceRequest параметры размещения приёма в слоте
type PlaceRequest struct {
	UserID     int64
	ServiceID  int64
	TimeSlotID int64
	OfficerID  *int64 // если задан, назначается без подбора
	Notes      *string
}
