package logging

import (
	stderrs "errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Station-Manager/errors"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var once sync.Once

func validateConfig(cfg *Config) error {
	const op errors.Op = "logging.validateConfig"
	if cfg == nil {
		return errors.New(op).Msg(errMsgNilConfig)
	}

	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("severity", isSeverity)
		_ = validate.RegisterValidation("reldir", isRelDir)
	})

	if err := validate.Struct(cfg); err != nil {
		return errors.New(op).Err(err).Msg(configErrorMessage(err))
	}

	return nil
}

// configErrorMessage names the offending fields so callers see them without
// unwrapping.
func configErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !stderrs.As(err, &verrs) || len(verrs) == 0 {
		return errMsgConfigInvalid
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" ("+fe.Tag()+")")
	}
	return errMsgConfigInvalid + " Invalid fields: " + strings.Join(parts, ", ")
}

func isSeverity(fl validator.FieldLevel) bool {
	_, err := ParseSeverity(fl.Field().String())
	return err == nil
}

// isRelDir rejects absolute paths and paths that climb out of the working dir.
func isRelDir(fl validator.FieldLevel) bool {
	dir := fl.Field().String()
	if filepath.IsAbs(dir) || strings.HasPrefix(dir, "/") {
		return false
	}
	clean := filepath.Clean(dir)
	return clean != ".." && !strings.HasPrefix(clean, ".."+string(filepath.Separator))
}
