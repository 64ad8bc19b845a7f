package models

// User is the authenticated principal as exposed to the rest of the app.
// Password material never appears here; it stays behind the users
// repository and the session store.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}
