package descriptor

import (
	"io"
	"strings"
	"text/template"

	"github.com/ternarybob/wdkres/internal/common"
	"github.com/ternarybob/wdkres/internal/models"
)

// descriptorTemplate is a version-resource header for the WDK common.ver
// script: it overrides the VER_* macros and then includes the shared header,
// which expands them into a VERSIONINFO block.
const descriptorTemplate = `#include <windows.h>
#include <ntverp.h>
#define	VER_FILETYPE	            {{.FileType}}
#define	VER_FILESUBTYPE	            {{.FileSubtype}}
#define VER_INTERNALNAME_STR        "{{rc .InternalName}}"
#define VER_ORIGINALFILENAME_STR    {{.OriginalFilename}}

#undef VER_FILEDESCRIPTION_STR
#define VER_FILEDESCRIPTION_STR "{{rc .Record.Description}}"

#undef  VER_PRODUCTNAME_STR
#define VER_PRODUCTNAME_STR    VER_FILEDESCRIPTION_STR

#define VER_FILEVERSION        {{.Record.FileVersion}},0
#define VER_FILEVERSION_STR    "{{rc .Record.ProductVersion}}.0"

#undef  VER_PRODUCTVERSION
#define VER_PRODUCTVERSION          VER_FILEVERSION

#undef  VER_PRODUCTVERSION_STR
#define VER_PRODUCTVERSION_STR      VER_FILEVERSION_STR

#define VER_LEGALCOPYRIGHT_STR      "{{rc .Record.Copyright}}"
#ifdef  VER_COMPANYNAME_STR

#undef  VER_COMPANYNAME_STR
#define VER_COMPANYNAME_STR         "{{rc .Record.CompanyName}}"
#endif

#undef  VER_PRODUCTNAME_STR
#define VER_PRODUCTNAME_STR    "{{rc .Record.ProductName}}"

#include "{{rc .CommonHeader}}"
`

var tmpl = template.Must(template.New("descriptor").
	Funcs(template.FuncMap{"rc": escapeRCString}).
	Parse(descriptorTemplate))

// templateData is everything the descriptor template renders
type templateData struct {
	FileType         string
	FileSubtype      string
	InternalName     string
	OriginalFilename string
	CommonHeader     string
	Record           models.MetadataRecord
}

// Render writes the resource descriptor for record to w
func Render(w io.Writer, config common.DescriptorConfig, record models.MetadataRecord) error {
	return tmpl.Execute(w, templateData{
		FileType:         config.FileType,
		FileSubtype:      config.FileSubtype,
		InternalName:     config.InternalName,
		OriginalFilename: config.OriginalFilename,
		CommonHeader:     config.CommonHeader,
		Record:           record,
	})
}

// escapeRCString doubles embedded quotes, the resource-script escape for '"'
// inside a string literal.
func escapeRCString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
