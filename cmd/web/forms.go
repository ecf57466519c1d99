package main

// Form types carry the submitted values back into the page on a validation
// failure, together with the field error messages.

type registerForm struct {
	Name   string
	Email  string
	Errors map[string]string
}

type loginForm struct {
	Email  string
	Errors map[string]string
}

type postForm struct {
	ID       int
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
	IsEdit   bool
	Errors   map[string]string
}

type commentForm struct {
	Body   string
	Errors map[string]string
}

type contactForm struct {
	Name    string
	Email   string
	Message string
	Errors  map[string]string
}
