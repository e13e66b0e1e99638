// path: graph/enums.go
package graph

import (
	"github.com/RodyMacay/biodiversity-monitoring/models"
	"github.com/graphql-go/graphql"
)

// enumType exposes a models enum under its canonical tokens. Values are
// the typed Go constants so fields holding them serialize directly.
func enumType[T ~string](name string, values []T, label func(T) string) *graphql.Enum {
	cfg := graphql.EnumValueConfigMap{}
	for _, v := range values {
		cfg[string(v)] = &graphql.EnumValueConfig{Value: v, Description: label(v)}
	}
	return graphql.NewEnum(graphql.EnumConfig{Name: name, Values: cfg})
}

var (
	conservationStatusEnum = enumType("ConservationStatus", models.ConservationStatuses(), models.ConservationStatus.Label)
	methodTypeEnum         = enumType("MethodType", models.MethodTypes(), models.MethodType.Label)
	costEfficiencyEnum     = enumType("CostEfficiency", models.CostEfficiencies(), models.CostEfficiency.Label)
	ecosystemEnum          = enumType("Ecosystem", models.Ecosystems(), models.Ecosystem.Label)
	protectionStatusEnum   = enumType("ProtectionStatus", models.ProtectionStatuses(), models.ProtectionStatus.Label)
	dataQualityEnum        = enumType("DataQuality", models.DataQualities(), models.DataQuality.Label)
	attachmentTypeEnum     = enumType("AttachmentType", models.AttachmentTypes(), models.AttachmentType.Label)
	userRoleEnum           = enumType("UserRole", models.Roles(), models.Role.Label)
)
