package data

// InitData writes the rows a fresh board needs. Every step is
// idempotent, so restarting the server never duplicates them.
func InitData() {
	initUsers()
	initSettings()
}
