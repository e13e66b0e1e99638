// path: models/enums.go
package models

import "strings"

// enumTable is the single mapping between canonical tokens, display labels
// and the legacy spellings older documents and identity claims still carry.
type enumTable[T ~string] struct {
	order  []T
	labels map[T]string
	lookup map[string]T
}

type enumEntry[T ~string] struct {
	Token   T
	Label   string
	Aliases []string
}

func newEnumTable[T ~string](entries ...enumEntry[T]) *enumTable[T] {
	t := &enumTable[T]{
		labels: make(map[T]string, len(entries)),
		lookup: make(map[string]T, len(entries)*3),
	}
	for _, e := range entries {
		t.order = append(t.order, e.Token)
		t.labels[e.Token] = e.Label
		t.lookup[normalizeToken(string(e.Token))] = e.Token
		t.lookup[normalizeToken(e.Label)] = e.Token
		for _, a := range e.Aliases {
			t.lookup[normalizeToken(a)] = e.Token
		}
	}
	return t
}

func (t *enumTable[T]) parse(s string) (T, bool) {
	v, ok := t.lookup[normalizeToken(s)]
	return v, ok
}

func (t *enumTable[T]) valid(v T) bool {
	_, ok := t.labels[v]
	return ok
}

func (t *enumTable[T]) values() []T {
	out := make([]T, len(t.order))
	copy(out, t.order)
	return out
}

// "Near Threatened", "near-threatened" and "NEAR_THREATENED" all normalise
// to the same key.
func normalizeToken(s string) string {
	s = strings.TrimSpace(strings.ToUpper(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

type ConservationStatus string

const (
	LeastConcern         ConservationStatus = "LEAST_CONCERN"
	NearThreatened       ConservationStatus = "NEAR_THREATENED"
	Vulnerable           ConservationStatus = "VULNERABLE"
	Endangered           ConservationStatus = "ENDANGERED"
	CriticallyEndangered ConservationStatus = "CRITICALLY_ENDANGERED"
	ExtinctInTheWild     ConservationStatus = "EXTINCT_IN_THE_WILD"
	Extinct              ConservationStatus = "EXTINCT"
	DataDeficient        ConservationStatus = "DATA_DEFICIENT"
)

var conservationStatuses = newEnumTable(
	enumEntry[ConservationStatus]{LeastConcern, "Least Concern", []string{"Preocupación menor"}},
	enumEntry[ConservationStatus]{NearThreatened, "Near Threatened", []string{"Casi amenazado"}},
	enumEntry[ConservationStatus]{Vulnerable, "Vulnerable", nil},
	enumEntry[ConservationStatus]{Endangered, "Endangered", []string{"En peligro"}},
	enumEntry[ConservationStatus]{CriticallyEndangered, "Critically Endangered", []string{"En peligro crítico"}},
	enumEntry[ConservationStatus]{ExtinctInTheWild, "Extinct in the Wild", []string{"Extinto en estado silvestre"}},
	enumEntry[ConservationStatus]{Extinct, "Extinct", []string{"Extinto"}},
	enumEntry[ConservationStatus]{DataDeficient, "Data Deficient", []string{"Datos insuficientes"}},
)

func ConservationStatuses() []ConservationStatus { return conservationStatuses.values() }
func ParseConservationStatus(s string) (ConservationStatus, bool) {
	return conservationStatuses.parse(s)
}
func (s ConservationStatus) Valid() bool   { return conservationStatuses.valid(s) }
func (s ConservationStatus) Label() string { return conservationStatuses.labels[s] }

type MethodType string

const (
	MethodGIS           MethodType = "GIS"
	MethodRemoteSensing MethodType = "REMOTE_SENSING"
	MethodMolecular     MethodType = "MOLECULAR"
	MethodAI            MethodType = "AI"
)

var methodTypes = newEnumTable(
	enumEntry[MethodType]{MethodGIS, "Geographic Information Systems (GIS)", nil},
	enumEntry[MethodType]{MethodRemoteSensing, "Remote Sensing", []string{"Teledetección"}},
	enumEntry[MethodType]{MethodMolecular, "Molecular", nil},
	enumEntry[MethodType]{MethodAI, "Artificial Intelligence", []string{"Inteligencia Artificial"}},
)

func MethodTypes() []MethodType                    { return methodTypes.values() }
func ParseMethodType(s string) (MethodType, bool) { return methodTypes.parse(s) }
func (t MethodType) Valid() bool                   { return methodTypes.valid(t) }
func (t MethodType) Label() string                 { return methodTypes.labels[t] }

type CostEfficiency string

const (
	CostLow    CostEfficiency = "LOW"
	CostMedium CostEfficiency = "MEDIUM"
	CostHigh   CostEfficiency = "HIGH"
)

var costEfficiencies = newEnumTable(
	enumEntry[CostEfficiency]{CostLow, "Low", []string{"Bajo"}},
	enumEntry[CostEfficiency]{CostMedium, "Medium", []string{"Medio"}},
	enumEntry[CostEfficiency]{CostHigh, "High", []string{"Alto"}},
)

func CostEfficiencies() []CostEfficiency                  { return costEfficiencies.values() }
func ParseCostEfficiency(s string) (CostEfficiency, bool) { return costEfficiencies.parse(s) }
func (c CostEfficiency) Valid() bool                       { return costEfficiencies.valid(c) }
func (c CostEfficiency) Label() string                     { return costEfficiencies.labels[c] }

type Ecosystem string

const (
	Forest       Ecosystem = "FOREST"
	Marine       Ecosystem = "MARINE"
	Freshwater   Ecosystem = "FRESHWATER"
	Grassland    Ecosystem = "GRASSLAND"
	Desert       Ecosystem = "DESERT"
	Tundra       Ecosystem = "TUNDRA"
	Urban        Ecosystem = "URBAN"
	Agricultural Ecosystem = "AGRICULTURAL"
)

var ecosystems = newEnumTable(
	enumEntry[Ecosystem]{Forest, "Forest", []string{"Bosque"}},
	enumEntry[Ecosystem]{Marine, "Marine", []string{"Marino"}},
	enumEntry[Ecosystem]{Freshwater, "Freshwater", []string{"Agua dulce"}},
	enumEntry[Ecosystem]{Grassland, "Grassland", []string{"Pastizal"}},
	enumEntry[Ecosystem]{Desert, "Desert", []string{"Desierto"}},
	enumEntry[Ecosystem]{Tundra, "Tundra", nil},
	enumEntry[Ecosystem]{Urban, "Urban", []string{"Urbano"}},
	enumEntry[Ecosystem]{Agricultural, "Agricultural", []string{"Agrícola"}},
)

func Ecosystems() []Ecosystem                    { return ecosystems.values() }
func ParseEcosystem(s string) (Ecosystem, bool) { return ecosystems.parse(s) }
func (e Ecosystem) Valid() bool                  { return ecosystems.valid(e) }
func (e Ecosystem) Label() string                { return ecosystems.labels[e] }

type ProtectionStatus string

const (
	Protected          ProtectionStatus = "PROTECTED"
	PartiallyProtected ProtectionStatus = "PARTIALLY_PROTECTED"
	Unprotected        ProtectionStatus = "UNPROTECTED"
)

var protectionStatuses = newEnumTable(
	enumEntry[ProtectionStatus]{Protected, "Protected", []string{"Protegido"}},
	enumEntry[ProtectionStatus]{PartiallyProtected, "Partially Protected", []string{"Parcialmente protegido"}},
	enumEntry[ProtectionStatus]{Unprotected, "Unprotected", []string{"No protegido"}},
)

func ProtectionStatuses() []ProtectionStatus                  { return protectionStatuses.values() }
func ParseProtectionStatus(s string) (ProtectionStatus, bool) { return protectionStatuses.parse(s) }
func (p ProtectionStatus) Valid() bool                         { return protectionStatuses.valid(p) }
func (p ProtectionStatus) Label() string                       { return protectionStatuses.labels[p] }

type DataQuality string

const (
	QualityHigh   DataQuality = "HIGH"
	QualityMedium DataQuality = "MEDIUM"
	QualityLow    DataQuality = "LOW"
)

var dataQualities = newEnumTable(
	enumEntry[DataQuality]{QualityHigh, "High", []string{"Alta"}},
	enumEntry[DataQuality]{QualityMedium, "Medium", []string{"Media"}},
	enumEntry[DataQuality]{QualityLow, "Low", []string{"Baja"}},
)

func DataQualities() []DataQuality                  { return dataQualities.values() }
func ParseDataQuality(s string) (DataQuality, bool) { return dataQualities.parse(s) }
func (q DataQuality) Valid() bool                    { return dataQualities.valid(q) }
func (q DataQuality) Label() string                  { return dataQualities.labels[q] }

type AttachmentType string

const (
	AttachmentImage    AttachmentType = "IMAGE"
	AttachmentDocument AttachmentType = "DOCUMENT"
	AttachmentAudio    AttachmentType = "AUDIO"
	AttachmentVideo    AttachmentType = "VIDEO"
)

var attachmentTypes = newEnumTable(
	enumEntry[AttachmentType]{AttachmentImage, "Image", []string{"Imagen"}},
	enumEntry[AttachmentType]{AttachmentDocument, "Document", []string{"Documento"}},
	enumEntry[AttachmentType]{AttachmentAudio, "Audio", nil},
	enumEntry[AttachmentType]{AttachmentVideo, "Video", nil},
)

func AttachmentTypes() []AttachmentType                  { return attachmentTypes.values() }
func ParseAttachmentType(s string) (AttachmentType, bool) { return attachmentTypes.parse(s) }
func (a AttachmentType) Valid() bool                       { return attachmentTypes.valid(a) }
func (a AttachmentType) Label() string                     { return attachmentTypes.labels[a] }

type Role string

const (
	RoleResearcher    Role = "RESEARCHER"
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleObserver      Role = "OBSERVER"
)

var roles = newEnumTable(
	enumEntry[Role]{RoleResearcher, "Researcher", []string{"investigador"}},
	enumEntry[Role]{RoleAdministrator, "Administrator", []string{"administrador", "admin"}},
	enumEntry[Role]{RoleObserver, "Observer", []string{"observador"}},
)

func Roles() []Role                    { return roles.values() }
func ParseRole(s string) (Role, bool) { return roles.parse(s) }
func (r Role) Valid() bool             { return roles.valid(r) }
func (r Role) Label() string           { return roles.labels[r] }
