// SPDX-License-Identifier: MPL-2.0

package entitlement

import (
	"errors"
	"fmt"
)

// Entitlement types, in vocabulary order and grouped by category.
const (
	// Camera grants photo and video capture.
	Camera Type = iota
	// Microphone grants audio capture.
	Microphone
	// Location grants access to GPS and location services.
	Location
	// Photos grants access to the photo library.
	Photos
	// Files grants open/save access to the file system.
	Files
	// Clipboard grants copy and paste.
	Clipboard
	// ScreenRecording grants screen capture and sharing.
	ScreenRecording

	// Accelerometer grants access to the accelerometer.
	Accelerometer
	// Gyroscope grants access to the gyroscope.
	Gyroscope
	// Magnetometer grants access to the magnetometer.
	Magnetometer
	// Barometer grants access to the barometer.
	Barometer
	// ProximitySensor grants access to the proximity sensor.
	ProximitySensor
	// AmbientLightSensor grants access to the ambient light sensor.
	AmbientLightSensor
	// TemperatureSensor grants access to temperature sensors.
	TemperatureSensor
	// HumiditySensor grants access to humidity sensors.
	HumiditySensor
	// HeartRateSensor grants access to heart rate sensors.
	HeartRateSensor

	// Firewall grants management of firewall and port rules.
	Firewall
	// Network grants general network access.
	Network
	// Bluetooth grants device discovery, pairing and transfer over Bluetooth.
	Bluetooth
	// Usb grants access to USB devices.
	Usb
	// Nfc grants access to NFC.
	Nfc

	// VirtualMachine grants creation and control of virtual machines.
	VirtualMachine
	// Container grants use and management of containers.
	Container
	// VirtualFileSystem grants mounting of virtual file systems.
	VirtualFileSystem

	// Notification grants sending and receiving system notifications.
	Notification

	// PythonIO grants execution of Python scripts.
	PythonIO
	// BashIO grants execution of Bash scripts.
	BashIO
	// WineEngine grants running Windows programs through Wine.
	WineEngine

	// SystemServices grants access to protected system services.
	SystemServices

	// VpnHost grants running as a VPN server.
	VpnHost
	// VpnClient grants connecting as a VPN client.
	VpnClient

	// CryptoStore grants managed access to key and seed storage.
	CryptoStore
	// WalletRead grants read access to wallet data.
	WalletRead
	// WalletWrite grants creating and sending wallet transactions.
	WalletWrite
	// ChainRead grants read access to blockchain data.
	ChainRead
	// ChainSync grants full chain synchronization.
	ChainSync
	// P2PNetwork grants peer-to-peer networking.
	P2PNetwork
	// MempoolAccess grants access to the mempool.
	MempoolAccess
	// LightningChannels grants management of Lightning channels.
	LightningChannels
	// LightningPay grants sending and receiving Lightning payments.
	LightningPay
	// LightningInfo grants read access to Lightning network information.
	LightningInfo
	// KeySeedExport grants export of wallet seeds and keys.
	KeySeedExport
	// HardwareWalletAccess grants access to external hardware wallets.
	HardwareWalletAccess
	// HardwareWalletRead grants reading addresses and public keys from hardware wallets.
	HardwareWalletRead
	// HardwareWalletSign grants signing with hardware wallets.
	HardwareWalletSign

	// DeviceAdmin grants administrative device control.
	DeviceAdmin
	// RemoteWipe grants remote wipe of data or device.
	RemoteWipe
	// RemoteConfig grants remote configuration of settings and profiles.
	RemoteConfig
	// AppInstall grants managed installation and removal of apps.
	AppInstall
	// EnterpriseVpn grants access to corporate VPNs.
	EnterpriseVpn
	// NetworkPolicyControl grants central control of network access.
	NetworkPolicyControl
	// EnterpriseSSO grants use of single sign-on providers.
	EnterpriseSSO
	// CertificateStore grants access to the certificate store.
	CertificateStore
	// BiometricAdmin grants management of biometric authentication.
	BiometricAdmin
	// DlpControl grants data loss prevention controls.
	DlpControl
	// SecureClipboard grants enterprise clipboard control.
	SecureClipboard
	// AuditLogAccess grants access to audit and security logs.
	AuditLogAccess
	// UsageStats grants access to aggregated usage statistics.
	UsageStats
	// SelfUpdate grants updating the bundle itself.
	SelfUpdate
	// RemoteSupport grants remote support sessions.
	RemoteSupport

	// GpioAccess grants access to GPIO pins.
	GpioAccess
	// I2cAccess grants access to the I2C bus.
	I2cAccess
	// SpiAccess grants access to the SPI bus.
	SpiAccess
	// UartAccess grants access to UART serial ports.
	UartAccess
	// PwmAccess grants access to PWM outputs.
	PwmAccess
	// OneWireAccess grants access to the 1-Wire bus.
	OneWireAccess
	// CanBusAccess grants access to the CAN bus.
	CanBusAccess
	// AdcAccess grants access to analog-digital converters.
	AdcAccess
	// DisplayAccess grants access to an integrated display.
	DisplayAccess
	// PiCameraModule grants access to a CSI camera module.
	PiCameraModule
	// BoardTemperatureAccess grants access to the board temperature sensor.
	BoardTemperatureAccess
	// BoardLedAccess grants access to board LEDs.
	BoardLedAccess

	// numTypes is the number of defined entitlement types; keep it last.
	numTypes
)

const (
	CategoryMedia          Category = "media"
	CategorySensors        Category = "sensors"
	CategoryNetwork        Category = "network"
	CategoryVirtualization Category = "virtualization"
	CategoryNotification   Category = "notification"
	CategoryScripting      Category = "scripting"
	CategorySystem         Category = "system"
	CategoryVPN            Category = "vpn"
	CategoryCrypto         Category = "crypto"
	CategoryEnterprise     Category = "enterprise"
	CategoryEmbedded       Category = "embedded"
)

var (
	// ErrUnknown is the sentinel wrapped by UnknownError.
	ErrUnknown = errors.New("unknown permission type")

	// ErrInvalidType is returned when encoding a Type value outside the vocabulary.
	ErrInvalidType = errors.New("invalid entitlement type")

	// definitions is indexed by Type. Order must follow the constant block.
	definitions = [numTypes]definition{
		Camera:          {"camera", CategoryMedia},
		Microphone:      {"microphone", CategoryMedia},
		Location:        {"location", CategoryMedia},
		Photos:          {"photos", CategoryMedia},
		Files:           {"files", CategoryMedia},
		Clipboard:       {"clipboard", CategoryMedia},
		ScreenRecording: {"screenrecording", CategoryMedia},

		Accelerometer:      {"accelerometer", CategorySensors},
		Gyroscope:          {"gyroscope", CategorySensors},
		Magnetometer:       {"magnetometer", CategorySensors},
		Barometer:          {"barometer", CategorySensors},
		ProximitySensor:    {"proximitysensor", CategorySensors},
		AmbientLightSensor: {"ambientlightsensor", CategorySensors},
		TemperatureSensor:  {"temperaturesensor", CategorySensors},
		HumiditySensor:     {"humiditysensor", CategorySensors},
		HeartRateSensor:    {"heartratesensor", CategorySensors},

		Firewall:  {"firewall", CategoryNetwork},
		Network:   {"network", CategoryNetwork},
		Bluetooth: {"bluetooth", CategoryNetwork},
		Usb:       {"usb", CategoryNetwork},
		Nfc:       {"nfc", CategoryNetwork},

		VirtualMachine:    {"virtualmachine", CategoryVirtualization},
		Container:         {"container", CategoryVirtualization},
		VirtualFileSystem: {"virtualfilesystem", CategoryVirtualization},

		Notification: {"notification", CategoryNotification},

		PythonIO:   {"pythonio", CategoryScripting},
		BashIO:     {"bashio", CategoryScripting},
		WineEngine: {"wineengine", CategoryScripting},

		SystemServices: {"systemservices", CategorySystem},

		VpnHost:   {"vpnhost", CategoryVPN},
		VpnClient: {"vpnclient", CategoryVPN},

		CryptoStore:          {"cryptostore", CategoryCrypto},
		WalletRead:           {"walletread", CategoryCrypto},
		WalletWrite:          {"walletwrite", CategoryCrypto},
		ChainRead:            {"chainread", CategoryCrypto},
		ChainSync:            {"chainsync", CategoryCrypto},
		P2PNetwork:           {"p2pnetwork", CategoryCrypto},
		MempoolAccess:        {"mempoolaccess", CategoryCrypto},
		LightningChannels:    {"lightningchannels", CategoryCrypto},
		LightningPay:         {"lightningpay", CategoryCrypto},
		LightningInfo:        {"lightninginfo", CategoryCrypto},
		KeySeedExport:        {"keyseedexport", CategoryCrypto},
		HardwareWalletAccess: {"hardwarewalletaccess", CategoryCrypto},
		HardwareWalletRead:   {"hardwarewalletread", CategoryCrypto},
		HardwareWalletSign:   {"hardwarewalletsign", CategoryCrypto},

		DeviceAdmin:          {"deviceadmin", CategoryEnterprise},
		RemoteWipe:           {"remotewipe", CategoryEnterprise},
		RemoteConfig:         {"remoteconfig", CategoryEnterprise},
		AppInstall:           {"appinstall", CategoryEnterprise},
		EnterpriseVpn:        {"enterprisevpn", CategoryEnterprise},
		NetworkPolicyControl: {"networkpolicycontrol", CategoryEnterprise},
		EnterpriseSSO:        {"enterprisesso", CategoryEnterprise},
		CertificateStore:     {"certificatestore", CategoryEnterprise},
		BiometricAdmin:       {"biometricadmin", CategoryEnterprise},
		DlpControl:           {"dlpcontrol", CategoryEnterprise},
		SecureClipboard:      {"secureclipboard", CategoryEnterprise},
		AuditLogAccess:       {"auditlogaccess", CategoryEnterprise},
		UsageStats:           {"usagestats", CategoryEnterprise},
		SelfUpdate:           {"selfupdate", CategoryEnterprise},
		RemoteSupport:        {"remotesupport", CategoryEnterprise},

		GpioAccess:             {"gpioaccess", CategoryEmbedded},
		I2cAccess:              {"i2caccess", CategoryEmbedded},
		SpiAccess:              {"spiaccess", CategoryEmbedded},
		UartAccess:             {"uartaccess", CategoryEmbedded},
		PwmAccess:              {"pwmaccess", CategoryEmbedded},
		OneWireAccess:          {"onewireaccess", CategoryEmbedded},
		CanBusAccess:           {"canbusaccess", CategoryEmbedded},
		AdcAccess:              {"adcaccess", CategoryEmbedded},
		DisplayAccess:          {"displayaccess", CategoryEmbedded},
		PiCameraModule:         {"picameramodule", CategoryEmbedded},
		BoardTemperatureAccess: {"boardtemperatureaccess", CategoryEmbedded},
		BoardLedAccess:         {"boardledaccess", CategoryEmbedded},
	}

	byTag = func() map[string]Type {
		m := make(map[string]Type, numTypes)
		for i := range numTypes {
			m[definitions[i].tag] = i
		}
		return m
	}()
)

type (
	// Type is a single capability from the closed entitlement vocabulary.
	Type uint8

	// Category groups entitlement types by domain.
	Category string

	// UnknownError is returned when a tag is not part of the vocabulary.
	// It wraps ErrUnknown for errors.Is() compatibility.
	UnknownError struct {
		Tag string
	}

	// InvalidTypeError is returned when a Type value outside the defined
	// constants is encoded.
	InvalidTypeError struct {
		Value Type
	}

	definition struct {
		tag      string
		category Category
	}
)

// Parse decodes a canonical tag. Tags are matched exactly.
func Parse(tag string) (Type, error) {
	t, ok := byTag[tag]
	if !ok {
		return 0, &UnknownError{Tag: tag}
	}
	return t, nil
}

// All returns every entitlement type in declaration order.
func All() []Type {
	all := make([]Type, 0, numTypes)
	for i := range numTypes {
		all = append(all, i)
	}
	return all
}

// Count returns the size of the vocabulary.
func Count() int { return int(numTypes) }

// String returns the canonical tag.
func (t Type) String() string {
	if t >= numTypes {
		return fmt.Sprintf("entitlement(%d)", uint8(t))
	}
	return definitions[t].tag
}

// Category returns the domain the entitlement belongs to, or "" for values
// outside the vocabulary.
func (t Type) Category() Category {
	if t >= numTypes {
		return ""
	}
	return definitions[t].category
}

// IsValid returns whether t is one of the defined entitlement types,
// and a list of validation errors if it is not.
func (t Type) IsValid() (bool, []error) {
	if t >= numTypes {
		return false, []error{&InvalidTypeError{Value: t}}
	}
	return true, nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if ok, errs := t.IsValid(); !ok {
		return nil, errs[0]
	}
	return []byte(definitions[t].tag), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Both encoding/json and
// CUE decoding route string values through it.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Error implements the error interface.
func (e *UnknownError) Error() string {
	return fmt.Sprintf("unknown permission type: %s", e.Tag)
}

// Unwrap returns ErrUnknown for errors.Is() compatibility.
func (e *UnknownError) Unwrap() error { return ErrUnknown }

// Error implements the error interface.
func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid entitlement type %d (valid: 0-%d)", uint8(e.Value), uint8(numTypes)-1)
}

// Unwrap returns ErrInvalidType for errors.Is() compatibility.
func (e *InvalidTypeError) Unwrap() error { return ErrInvalidType }

// String returns the category name.
func (c Category) String() string { return string(c) }
