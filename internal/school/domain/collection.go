package domain

// Collection names one of the shared collections a dashboard can observe.
type Collection string

const (
	CollectionClasses       Collection = "classes"
	CollectionStudents      Collection = "students"
	CollectionAnnouncements Collection = "announcements"
)

// Collections lists every watchable collection in a fixed order.
var Collections = []Collection{
	CollectionClasses,
	CollectionStudents,
	CollectionAnnouncements,
}

func (c Collection) String() string { return string(c) }

// Valid reports whether c is a known watchable collection.
func (c Collection) Valid() bool {
	switch c {
	case CollectionClasses, CollectionStudents, CollectionAnnouncements:
		return true
	default:
		return false
	}
}
