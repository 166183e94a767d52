package validation

import (
	"testing"

	"seguradora/internal/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidarCPF(t *testing.T) {
	cases := []struct {
		cpf  string
		want bool
	}{
		{"529.982.247-25", true},
		{"52998224725", true},
		{"111.444.777-35", true},
		{"529.982.247-26", false},
		{"111.111.111-11", false},
		{"00000000000", false},
		{"5299822472", false},
		{"529982247250", false},
		{"", false},
		{"abc.def.ghi-jk", false},
	}
	for _, tc := range cases {
		t.Run(tc.cpf, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidarCPF(tc.cpf))
		})
	}
}

func TestValidarCPF_AnySingleDigitChangeIsRejected(t *testing.T) {
	const valido = "52998224725"
	require.True(t, ValidarCPF(valido))

	for pos := 0; pos < len(valido); pos++ {
		for d := byte('0'); d <= '9'; d++ {
			if valido[pos] == d {
				continue
			}
			mutado := valido[:pos] + string(d) + valido[pos+1:]
			assert.False(t, ValidarCPF(mutado), "mutation %s accepted", mutado)
		}
	}
}

func TestLimparCPF(t *testing.T) {
	assert.Equal(t, "52998224725", LimparCPF("529.982.247-25"))
	assert.Equal(t, "", LimparCPF("..-"))
}

func TestValidarData(t *testing.T) {
	assert.True(t, ValidarData("15/04/1990"))
	assert.True(t, ValidarData("29/02/2024"))
	assert.False(t, ValidarData("29/02/2023"))
	assert.False(t, ValidarData("31/04/2024"))
	assert.False(t, ValidarData("1990-04-15"))
	assert.False(t, ValidarData("15/13/1990"))
	assert.False(t, ValidarData(""))
}

func TestValidarAnoMes(t *testing.T) {
	assert.True(t, ValidarAnoMes("2024-01"))
	assert.False(t, ValidarAnoMes("2024-13"))
	assert.False(t, ValidarAnoMes("01/2024"))
}

func TestValidarTelefone(t *testing.T) {
	assert.True(t, ValidarTelefone("(11) 98765-4321"))
	assert.True(t, ValidarTelefone("+55 11 98765-4321"))
	assert.False(t, ValidarTelefone("123"))
	assert.False(t, ValidarTelefone("telefone"))
	assert.Equal(t, "+5511987654321", FormatarTelefone("(11) 98765-4321"))
}

type exemplo struct {
	CPF      string  `json:"cpf"       validate:"required,cpf"`
	Data     string  `json:"data"      validate:"required,data"`
	Telefone *string `json:"telefone"  validate:"omitempty,telefone"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(exemplo{CPF: "529.982.247-25", Data: "01/01/2000"}))

	ruim := "x"
	err := Struct(exemplo{CPF: "123", Data: "2000-01-01", Telefone: &ruim})
	require.Error(t, err)
	assert.True(t, apierror.Is(err, apierror.KindValidation))

	var e *apierror.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "CPF inválido.", e.Fields["cpf"])
	assert.Equal(t, "Data inválida. Use DD/MM/AAAA.", e.Fields["data"])
	assert.Equal(t, "Telefone inválido.", e.Fields["telefone"])
}
