package constants

const (
	// Datastream ids used by the Islandora content models.
	DatastreamDC        = "DC"
	DatastreamMODS      = "MODS"
	DatastreamOBJ       = "OBJ"
	DatastreamPolicy    = "POLICY"
	DatastreamRelsExt   = "RELS-EXT"
	DatastreamThumb     = "TN"
	ControlGroupManaged = "M"

	// Object and datastream states.
	StateActive   = "A"
	StateInactive = "I"
	StateDeleted  = "D"

	// Checksum algorithms Fedora accepts on datastream creation.
	ChecksumDefault  = "DEFAULT"
	ChecksumDisabled = "DISABLED"
	ChecksumMD5      = "MD5"
	ChecksumSHA1     = "SHA-1"
	ChecksumSHA256   = "SHA-256"
	ChecksumSHA385   = "SHA-385"
	ChecksumSHA512   = "SHA-512"

	FedoraURIPrefix = "info:fedora/"

	PredicateHasModel             = "info:fedora/fedora-system:def/model#hasModel"
	PredicateIsConstituentOf      = "info:fedora/fedora-system:def/relations-external#isConstituentOf"
	PredicateIsMemberOfCollection = "info:fedora/fedora-system:def/relations-external#isMemberOfCollection"
	PredicateSequenceNumberPrefix = "http://islandora.ca/ontology/relsext#isSequenceNumberOf"

	ModelBinaryObject = "info:fedora/islandora:binaryObjectCModel"
	ModelCompound     = "info:fedora/islandora:compoundCModel"

	// Conventional locations of the auxiliary assets, relative to
	// the working directory.
	DefaultThumbnailPath         = "thumbnail/thumbnail.png"
	DefaultPolicyPath            = "policies/POLICY.xml"
	DefaultRestrictionPolicyPath = "policies/NAGPRA_POLICY.xml"
	DefaultModsPath              = "metadata/mods.xml"
	DefaultDCPath                = "metadata/dc.xml"

	DefaultFedoraURL      = "http://localhost:8080"
	DefaultFedoraUser     = "fedoraAdmin"
	DefaultFedoraPassword = "fedoraAdmin"

	ItemKindPart     = "part"
	ItemKindCompound = "compound"
	ItemKindPolicy   = "policy"

	TopicIngested   = "fedora_ingested_topic"
	TopicRestrict   = "fedora_restrict_topic"
	ChannelRestrict = "fedora_restrict"
)

var ChecksumTypes = []string{
	ChecksumDefault,
	ChecksumDisabled,
	ChecksumMD5,
	ChecksumSHA1,
	ChecksumSHA256,
	ChecksumSHA385,
	ChecksumSHA512,
}

var ObjectStates = []string{
	StateActive,
	StateInactive,
}
