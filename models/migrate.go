package models

// All lists every table the service owns, in migration order
func All() []interface{} {
	return []interface{}{
		&Booking{},
		&BookedDate{},
		&BlockedDate{},
		&AvailabilityLog{},
		&Review{},
		&GalleryItem{},
		&Lead{},
		&ContactMessage{},
		&Payment{},
	}
}
