package export

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportClock = time.Date(2026, time.March, 5, 14, 30, 45, 123_000_000, time.UTC)

func TestSerializeOneC(t *testing.T) {
	pkg := Serialize(FormatOneC, "Уважаемый Иван Иванович,\nтекст ответа.", "vhod_123.pdf", exportClock)

	assert.Equal(t, "application/xml", pkg.MimeType)
	assert.Equal(t, "export_1c_1772980245123.xml", pkg.Filename)
	assert.Contains(t, pkg.Content, "<Created>2026-03-05T14:30:45.123Z</Created>")
	assert.Contains(t, pkg.Content, "<Basis>vhod_123.pdf</Basis>")
	assert.Contains(t, pkg.Content, "<![CDATA[\nУважаемый Иван Иванович,\nтекст ответа.\n]]>")
	assert.True(t, strings.HasPrefix(pkg.Content, `<?xml version="1.0" encoding="UTF-8"?>`))
}

func TestSerializeDirectum(t *testing.T) {
	pkg := Serialize(FormatDirectum, "Текст с \"кавычками\"", "scan.jpg", exportClock)

	assert.Equal(t, "application/json", pkg.MimeType)
	assert.Equal(t, "export_directum_1772980245123.json", pkg.Filename)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(pkg.Content), &decoded))
	assert.Equal(t, "Sungero.Docflow.IOutgoingLetter, Sungero.Docflow.Interfaces", decoded["$type"])
	assert.Equal(t, "2026-03-05T14:30:45.123Z", decoded["DocumentDate"])
	assert.Equal(t, "scan.jpg", decoded["BasisDocumentName"])
	assert.Equal(t, "Текст с \"кавычками\"", decoded["Body"])
	assert.Equal(t, "Draft", decoded["LifeCycleState"])
}

func TestSerializeDelo(t *testing.T) {
	pkg := Serialize(FormatDelo, "Текст ответа", "обращение.pdf", exportClock)

	assert.Equal(t, "application/xml", pkg.MimeType)
	assert.Equal(t, "export_delo_1772980245123.xml", pkg.Filename)
	assert.Contains(t, pkg.Content, "<RegDate>05.03.2026</RegDate>")
	assert.Contains(t, pkg.Content, "<Summary>Ответ на вх. документ обращение.pdf</Summary>")
	assert.Contains(t, pkg.Content, "<TextContent><![CDATA[Текст ответа]]></TextContent>")
}

func TestSerializeUnknownFormatFallsBackToPlainText(t *testing.T) {
	pkg := Serialize(Format("word"), "просто текст", "a.pdf", exportClock)

	assert.Equal(t, "export.txt", pkg.Filename)
	assert.Equal(t, "text/plain", pkg.MimeType)
	assert.Equal(t, "просто текст", pkg.Content)
}
