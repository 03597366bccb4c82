package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	frTranslations "github.com/go-playground/validator/v10/translations/fr"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"exusiai.dev/activity-backend/internal/constant"
	"exusiai.dev/activity-backend/internal/pkg/pgerr"
	"exusiai.dev/activity-backend/internal/util"
	"exusiai.dev/activity-backend/internal/util/i18n"
)

var Validate = util.NewValidator()

func init() {
	register := map[string]func(*validator.Validate, ut.Translator) error{
		"en": enTranslations.RegisterDefaultTranslations,
		"fr": frTranslations.RegisterDefaultTranslations,
		"ja": jaTranslations.RegisterDefaultTranslations,
		"zh": zhTranslations.RegisterDefaultTranslations,
	}

	for l, fn := range register {
		tr, _ := i18n.UT.GetTranslator(l)
		if err := fn(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", l).Msg("could not register translation")
		}

		err := Validate.RegisterTranslation("activitydate", tr, func(ut ut.Translator) error {
			return ut.Add("activitydate", "{0} must be a date such as 2006-01-02 or 2006-01-02T15:04:05Z", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("activitydate", fe.Field())
			return t
		})
		if err != nil {
			log.Warn().Err(err).Str("locale", l).Msg("could not register translation for function activitydate")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// TranslatorFromCtx returns the translator negotiated by middlewares.InjectI18n,
// falling back to the default locale.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if tr, ok := ctx.Locals(constant.ContextKeyTranslator).(ut.Translator); ok {
		return tr
	}
	tr, _ := i18n.UT.GetTranslator(i18n.DefaultLocale)
	return tr
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))

	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Field(),
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}

	return trans
}

func validateStruct(ctx *fiber.Ctx, s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(TranslatorFromCtx(ctx), errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return pgerr.NewInvalidViolations(err)
	}

	return nil
}

// ValidQuery is ValidBody for query strings.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid query: %s", err)
	}

	if err := validateStruct(ctx, dest); err != nil {
		return pgerr.NewInvalidViolations(err)
	}

	return nil
}

// ParamID reads a positive integer route parameter.
func ParamID(ctx *fiber.Ctx, key string) (int64, error) {
	id, err := ctx.ParamsInt(key)
	if err != nil || id <= 0 {
		return 0, pgerr.ErrInvalidReq.Msg("invalid or missing %s: must be a positive integer", key)
	}
	return int64(id), nil
}
