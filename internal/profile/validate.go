package profile

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mx-space/linkpage/internal/models"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// ValidateAppearance checks the closed enums of a.
func ValidateAppearance(a models.Appearance) error {
	return validateAppearanceFields(a, nil)
}

// validateAppearanceFields reports only failures under the named top-level
// fields of a; nil checks every field.
func validateAppearanceFields(a models.Appearance, only []string) error {
	err := validatorInstance().Struct(a)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidAppearance, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if only != nil && !underAny(fe.StructNamespace(), only) {
			continue
		}
		fields = append(fields, fmt.Sprintf("%s=%v", fe.Namespace(), fe.Value()))
	}
	if len(fields) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidAppearance, strings.Join(fields, ", "))
}

// underAny reports whether ns ("Appearance.Layout.AvatarShape") sits under
// one of the top-level field names.
func underAny(ns string, top []string) bool {
	_, rest, ok := strings.Cut(ns, ".")
	if !ok {
		return false
	}
	head, _, _ := strings.Cut(rest, ".")
	for _, f := range top {
		if head == f {
			return true
		}
	}
	return false
}

// NormalizeAppearance clamps the numeric layout fields and gradient offsets
// into their declared ranges.
func NormalizeAppearance(a models.Appearance) models.Appearance {
	a = a.Clone()
	a.Layout.AvatarBorderWidth = clampInt(a.Layout.AvatarBorderWidth, models.MinAvatarBorderWidth, models.MaxAvatarBorderWidth)
	a.Layout.ButtonSpacing = clampInt(a.Layout.ButtonSpacing, models.MinButtonSpacing, models.MaxButtonSpacing)
	a.Layout.ContainerWidth = clampInt(a.Layout.ContainerWidth, models.MinContainerWidth, models.MaxContainerWidth)
	for i := range a.BgGradient.Stops {
		a.BgGradient.Stops[i].OffsetPercent = clampFloat(a.BgGradient.Stops[i].OffsetPercent, 0, 100)
	}
	return a
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
