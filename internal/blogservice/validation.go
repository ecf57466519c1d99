package blogservice

import (
	"regexp"

	"github.com/inkstone-dev/inkstone/internal/common"
)

var (
	URLRX = regexp.MustCompile(`^https?://[^\s]+$`)
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must not be more than 200 characters long")
}

func validateSubtitle(v *common.Validator, subtitle string) {
	v.Check(subtitle != "", "subtitle", "must be provided")
	v.Check(v.CheckStringLength(subtitle, 1, 200), "subtitle", "must not be more than 200 characters long")
}

func validateBody(v *common.Validator, body string) {
	v.Check(body != "", "body", "must be provided")
}

func validateImgURL(v *common.Validator, imgURL string) {
	v.Check(imgURL != "", "img_url", "must be provided")
	v.Check(v.Matches(imgURL, URLRX), "img_url", "must be a valid URL")
}

func validateComment(v *common.Validator, body string) {
	v.Check(body != "", "comment", "must be provided")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
