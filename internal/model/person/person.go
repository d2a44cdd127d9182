package person

// Person is the single resource exposed by the API.
type Person struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Age       int    `json:"age"`
}

// Seed provides the default records loaded on process start.
func Seed() []Person {
	return []Person{
		{ID: 1, FirstName: "John", LastName: "Doe", Age: 31},
		{ID: 2, FirstName: "Jane", LastName: "Doe", Age: 23},
		{ID: 3, FirstName: "Alice", LastName: "Smith", Age: 42},
	}
}
