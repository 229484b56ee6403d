// Package templates renders the portal's HTML pages as templ components.
package templates

import "github.com/dseza/portal/internal/platform/i18n"

// Copy holds the translated interface strings for one language.
type Copy struct {
	SiteName        string
	HomeTitle       string
	HomeIntro       string
	NotFoundTitle   string
	NotFoundMessage string
	BackHome        string
	ReadInOther     string
	LookedUpAs      string
}

var vietnameseCopy = Copy{
	SiteName:        "Khu kinh tế Đà Nẵng",
	HomeTitle:       "Trang chủ",
	HomeIntro:       "Cổng thông tin Ban Quản lý Khu công nghệ cao và các khu công nghiệp Đà Nẵng.",
	NotFoundTitle:   "Không tìm thấy bài viết",
	NotFoundMessage: "Bài viết bạn yêu cầu không tồn tại hoặc đã bị gỡ bỏ.",
	BackHome:        "Về trang chủ",
	ReadInOther:     "Read in English",
	LookedUpAs:      "Đã tra cứu theo",
}

var englishCopy = Copy{
	SiteName:        "Da Nang Economic Zones",
	HomeTitle:       "Home",
	HomeIntro:       "Portal of the Da Nang Hi-Tech Park and Industrial Zones Authority.",
	NotFoundTitle:   "Article not found",
	NotFoundMessage: "The article you requested does not exist or has been removed.",
	BackHome:        "Back to home",
	ReadInOther:     "Đọc bằng tiếng Việt",
	LookedUpAs:      "Looked up as",
}

// For returns the interface copy for a language, defaulting to Vietnamese.
func For(lang i18n.Language) Copy {
	if lang == i18n.English {
		return englishCopy
	}
	return vietnameseCopy
}
