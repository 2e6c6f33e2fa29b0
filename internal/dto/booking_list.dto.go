package dto

type BookingListDTO struct {
	ID            uint   `json:"id"`
	ScheduledDate string `json:"scheduled_date"`
	TimeSlotStart string `json:"time_slot_start"`
	TimeSlotEnd   string `json:"time_slot_end"`
	Status        string `json:"status"`
	BookingType   string `json:"booking_type"`
	Priority      string `json:"priority"`
	PetName       string `json:"pet_name"`
	OwnerName     string `json:"owner_name"`
	VetName       string `json:"vet_name"`
}
