package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pnext5524-creator/sekretar/internal/models"
)

// Format selects the target document-management system.
type Format string

const (
	// FormatOneC targets 1С:Документооборот (Universal Data Exchange XML).
	FormatOneC Format = "onec"
	// FormatDirectum targets Directum RX (REST JSON).
	FormatDirectum Format = "directum"
	// FormatDelo targets СЭД "Дело" (EOS interchange XML).
	FormatDelo Format = "delo"
)

// Serialize renders the response text into a downloadable package for
// the chosen EDMS. The templates are fixed; the response text is
// embedded verbatim (CDATA for the XML variants, string-escaped for
// JSON). Unknown formats fall back to a plain-text package. Pure
// function of its inputs, including the clock.
func Serialize(format Format, responseText, originatingFileName string, now time.Time) models.ExportPackage {
	timestamp := now.UTC().Format("2006-01-02T15:04:05.000Z")

	switch format {
	case FormatOneC:
		return models.ExportPackage{
			Filename: fmt.Sprintf("export_1c_%d.xml", now.UnixMilli()),
			MimeType: "application/xml",
			Content: fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Communication xmlns="http://www.1c.ru/docflow/integration">
  <Header>
    <Source>Sekretar 2.0</Source>
    <Created>%s</Created>
    <Type>OutgoingDocument</Type>
  </Header>
  <Document>
    <Title>Ответ на обращение (AI Draft)</Title>
    <Basis>%s</Basis>
    <Description>Проект ответа, сгенерированный системой Секретарь 2.0</Description>
    <Body>
<![CDATA[
%s
]]>
    </Body>
    <Status>Draft</Status>
    <Priority>Normal</Priority>
  </Document>
</Communication>`, timestamp, originatingFileName, responseText),
		}

	case FormatDirectum:
		return models.ExportPackage{
			Filename: fmt.Sprintf("export_directum_%d.json", now.UnixMilli()),
			MimeType: "application/json",
			Content: fmt.Sprintf(`{
  "$type": "Sungero.Docflow.IOutgoingLetter, Sungero.Docflow.Interfaces",
  "Subject": "Ответ на обращение (Проект)",
  "Note": "Сгенерировано в Секретарь 2.0",
  "DocumentDate": %s,
  "BasisDocumentName": %s,
  "Body": %s,
  "LifeCycleState": "Draft",
  "Author": "AI Assistant"
}`, jsonString(timestamp), jsonString(originatingFileName), jsonString(responseText)),
		}

	case FormatDelo:
		return models.ExportPackage{
			Filename: fmt.Sprintf("export_delo_%d.xml", now.UnixMilli()),
			MimeType: "application/xml",
			Content: fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<Card>
  <MainInfo>
    <CardKind>Проект исходящего</CardKind>
    <RegDate>%s</RegDate>
    <Summary>Ответ на вх. документ %s</Summary>
  </MainInfo>
  <Files>
    <File>
      <Description>Текст ответа</Description>
      <TextContent><![CDATA[%s]]></TextContent>
    </File>
  </Files>
  <SystemInfo>
    <Generator>Секретарь 2.0</Generator>
    <Version>1.0</Version>
  </SystemInfo>
</Card>`, now.Format("02.01.2006"), originatingFileName, responseText),
		}

	default:
		return models.ExportPackage{
			Filename: "export.txt",
			MimeType: "text/plain",
			Content:  responseText,
		}
	}
}

func jsonString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
