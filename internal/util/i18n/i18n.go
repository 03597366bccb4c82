package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
)

// DefaultLocale is used whenever neither the user nor the request name a
// locale we have translations for.
const DefaultLocale = "en"

var UT = ut.New(en.New(), en.New(), fr.New(), ja.New(), zh.New())
