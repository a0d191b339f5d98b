package resumen_ar

import (
	"bytes"
	"testing"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestClassify_Categories(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		line     string
		expected common.Category
	}{
		{"TRANSFERENCIA RECIBIDA CUIT 20-30405060-7", common.CategoryTransferReceived},
		{"Transferencia realizada a Juan Pérez", common.CategoryTransferSent},
		{"TRANSFERENCIA ENTRE CUENTAS PROPIAS", common.CategoryTransferOwn},
		{"DEBITO API INGRESOS BRUTOS", common.CategoryDebitAPI},
		{"DEBITO ARCA PLAN DE PAGOS", common.CategoryDebitARCA},
		{"RETENCION SIRCREB", common.CategorySircreb},
		{"IMPUESTO DyC LEY 25413", common.CategoryDyC},
		{"Comisión mantenimiento de cuenta", common.CategoryCommission},
		{"IVA TASA GENERAL 21%", common.CategoryVAT21},
		{"IVA ALICUOTA REDUCIDA 10,5%", common.CategoryVAT105},
		{"IVA DEBITO FISCAL", common.CategoryVATOther},
		{"PERCEPCION IVA RG 2408", common.CategoryVATPerception},
		{"Saldo al 31/01/2025", common.CategoryBalanceMarker},
		{"DEBITO AUTOMATICO SEGURO DE VIDA", common.CategoryDebitAuto},
	}

	for _, test := range tests {
		cls := Classify(rules, test.line)
		assert.True(t, cls.Matched, "expected %q to classify", test.line)
		assert.Equal(t, test.expected, cls.Category, "line %q", test.line)
	}
}

func TestClassify_SircrebBeatsGenericDebit(t *testing.T) {
	// Rule order is priority: the specific withholding wins over the
	// generic automatic debit cues on the same line.
	cls := Classify(DefaultRules(), "DEBITO AUTOMATICO SIRCREB API")
	assert.Equal(t, common.CategorySircreb, cls.Category)
}

func TestClassify_OwnAccountBeatsThirdPartyTransfer(t *testing.T) {
	cls := Classify(DefaultRules(), "TRANSFERENCIA REALIZADA ENTRE CUENTAS PROPIAS")
	assert.Equal(t, common.CategoryTransferOwn, cls.Category)
}

func TestClassify_RatedVATBeatsBareVAT(t *testing.T) {
	cls := Classify(DefaultRules(), "IVA 10,5 SOBRE COMISIONES")
	assert.Equal(t, common.CategoryVAT105, cls.Category)
}

func TestClassify_RateDigitsInAmountColumnIgnored(t *testing.T) {
	// A rate requirement reads the narration only; digits inside the money
	// columns must not promote a bare IVA line to a rated one.
	cls := Classify(DefaultRules(), "IVA DEBITO FISCAL 210,50- 1.000,00")
	assert.Equal(t, common.CategoryVATOther, cls.Category)

	cls = Classify(DefaultRules(), "IVA DEBITO FISCAL 21,35-")
	assert.Equal(t, common.CategoryVATOther, cls.Category)

	// A rate printed in the narration still wins over bare IVA.
	cls = Classify(DefaultRules(), "IVA 21% SOBRE COMISIONES 21,35-")
	assert.Equal(t, common.CategoryVAT21, cls.Category)
}

func TestClassify_Unclassified(t *testing.T) {
	cls := Classify(DefaultRules(), "HOJA 1 DE 3 CONSULTAS 0800-555-0000")
	assert.False(t, cls.Matched)
	assert.Empty(t, cls.Category)
}

func TestClassify_DiacriticInsensitive(t *testing.T) {
	cls := Classify(DefaultRules(), "comisión por transferencia")
	assert.True(t, cls.Matched)
	assert.Equal(t, common.CategoryCommission, cls.Category)
}

func TestClassify_CapturesTaxID(t *testing.T) {
	cls := Classify(DefaultRules(), "TRANSFERENCIA RECIBIDA DE CUIT 20-30405060-7")
	assert.Equal(t, "20304050607", cls.TaxID)

	cls = Classify(DefaultRules(), "TRANSFERENCIA RECIBIDA SIN ORIGEN")
	assert.True(t, cls.Matched)
	assert.Empty(t, cls.TaxID)
}

const testRulesYAML = `
rules:
  - name: special
    category: sircreb
    match: 'ESPECIAL'
  - name: commission
    category: commission
    match: 'COMISION'
    require: 'CUENTA'
`

func TestRulesFromConfig_Override(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	viper.SetConfigType("yaml")
	assert.NoError(t, viper.ReadConfig(bytes.NewBufferString(testRulesYAML)))

	rules := RulesFromConfig()
	assert.Len(t, rules, 2)
	assert.Equal(t, "special", rules[0].Name)
	assert.Equal(t, common.CategorySircreb, rules[0].Category)
	assert.NotNil(t, rules[1].Require)

	cls := Classify(rules, "DEBITO ESPECIAL")
	assert.Equal(t, common.CategorySircreb, cls.Category)

	// Require pattern must also hit
	cls = Classify(rules, "COMISION VARIOS")
	assert.False(t, cls.Matched)
	cls = Classify(rules, "COMISION DE CUENTA")
	assert.Equal(t, common.CategoryCommission, cls.Category)
}

func TestRulesFromConfig_FallsBackToDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	rules := RulesFromConfig()
	assert.Equal(t, len(DefaultRules()), len(rules))
	assert.Equal(t, "balance_marker", rules[0].Name)
}
