package tsparams

const (
	// LabelSuite represents the tempest label that can be used for test cases selection.
	LabelSuite = "tempest"

	// KeystoneHost is the identity endpoint host used by the rendering test cases.
	KeystoneHost = "10.5.0.10"
	// DefaultDomainID is the admin domain id used by the rendering test cases.
	DefaultDomainID = "f9a65cbd69f14ccf8b4c1eaa0b0c4a47"
	// ImageID is the primary test image id used by the rendering test cases.
	ImageID = "6d8bed40-5de0-45a2-a66c-5d0cbd8e9475"
	// ImageAltID is the alternate test image id used by the rendering test cases.
	ImageAltID = "a06a08a6-cf18-407b-9f42-f1a7f7e8922d"
	// FlavorRef is the primary flavor id used by the rendering test cases.
	FlavorRef = "7b44a9a5-ee30-4de2-85f7-23a2c2f47861"
	// FlavorRefAlt is the alternate flavor id used by the rendering test cases.
	FlavorRefAlt = "9a0c75b1-01de-44b3-91a2-e8c42cf9a664"
	// ExtNetID is the external network id used by the rendering test cases.
	ExtNetID = "8a4a6f2a-9a1c-4a7b-8468-d3f4d4e3f21b"
	// NameServer is the name server address used by the rendering test cases.
	NameServer = "10.5.0.2"
	// SwiftIP is the swift proxy address used by the rendering test cases.
	SwiftIP = "10.5.0.30"
)
