// Package validation holds the input checks shared by every entry point:
// CPF checksum, DD/MM/YYYY dates, Brazilian phone numbers and struct tags.
package validation

import (
	"reflect"
	"strings"
	"time"

	"seguradora/internal/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/ttacon/libphonenumber"
)

// LayoutData is the only accepted date format (DD/MM/YYYY).
const LayoutData = "02/01/2006"

const layoutAnoMes = "2006-01"

// LimparCPF strips everything but digits.
func LimparCPF(cpf string) string {
	var b strings.Builder
	b.Grow(len(cpf))
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidarCPF checks length and both check digits. Formatted input
// ("529.982.247-25") is accepted.
func ValidarCPF(cpf string) bool {
	d := LimparCPF(cpf)
	if len(d) != 11 {
		return false
	}
	if strings.Count(d, d[:1]) == 11 {
		return false
	}
	return digitoVerificador(d[:9]) == int(d[9]-'0') &&
		digitoVerificador(d[:10]) == int(d[10]-'0')
}

// digitoVerificador weights the prefix from len+1 down to 2.
func digitoVerificador(prefixo string) int {
	soma := 0
	peso := len(prefixo) + 1
	for i := 0; i < len(prefixo); i++ {
		soma += int(prefixo[i]-'0') * peso
		peso--
	}
	return (soma * 10 % 11) % 10
}

// ValidarData reports whether s is a real calendar date in DD/MM/YYYY.
func ValidarData(s string) bool {
	_, err := time.Parse(LayoutData, s)
	return err == nil
}

// ValidarAnoMes reports whether s is YYYY-MM.
func ValidarAnoMes(s string) bool {
	_, err := time.Parse(layoutAnoMes, s)
	return err == nil
}

// ValidarTelefone accepts any number libphonenumber considers valid for Brazil.
func ValidarTelefone(s string) bool {
	num, err := libphonenumber.Parse(s, "BR")
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(num)
}

// FormatarTelefone returns the E.164 form, or s unchanged when it cannot be parsed.
func FormatarTelefone(s string) string {
	num, err := libphonenumber.Parse(s, "BR")
	if err != nil {
		return s
	}
	return libphonenumber.Format(num, libphonenumber.E164)
}

// ─── Struct validation ───────────────────────────────────────────────────────

var validate = validator.New()

func init() {
	// decimal.Decimal must look numeric to tags like required, gt=0.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	_ = validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidarCPF(fl.Field().String())
	})
	_ = validate.RegisterValidation("data", func(fl validator.FieldLevel) bool {
		return ValidarData(fl.Field().String())
	})
	_ = validate.RegisterValidation("anomes", func(fl validator.FieldLevel) bool {
		return ValidarAnoMes(fl.Field().String())
	})
	_ = validate.RegisterValidation("telefone", func(fl validator.FieldLevel) bool {
		return ValidarTelefone(fl.Field().String())
	})
}

var mensagens = map[string]string{
	"required": "Campo obrigatório.",
	"cpf":      "CPF inválido.",
	"data":     "Data inválida. Use DD/MM/AAAA.",
	"anomes":   "Período inválido. Use AAAA-MM.",
	"telefone": "Telefone inválido.",
	"email":    "E-mail inválido.",
	"gt":       "Valor deve ser maior que zero.",
	"oneof":    "Valor não permitido.",
	"min":      "Valor muito curto.",
}

// Struct runs the validate tags of s and returns a KindValidation error
// with one message per failing field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierror.Invalid("", apierror.MensagemGenerica)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := mensagens[fe.Tag()]
		if !ok {
			msg = "Valor inválido."
		}
		fields[fe.Field()] = msg
	}
	return apierror.InvalidFields(fields)
}
