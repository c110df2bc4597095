package entity

type Brand struct {
	BaseNoDelete
	Name string  `db:"name"`
	Logo *string `db:"logo"`
}
