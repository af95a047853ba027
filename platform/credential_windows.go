//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	advapi32    = windows.NewLazySystemDLL("advapi32.dll")
	credReadW   = advapi32.NewProc("CredReadW")
	credWriteW  = advapi32.NewProc("CredWriteW")
	credDeleteW = advapi32.NewProc("CredDeleteW")
	credFree    = advapi32.NewProc("CredFree")
)

const (
	credTarget = "ClipTranslate_APIKey"

	credTypeGeneric         = 1
	credPersistLocalMachine = 2
)

type credentialW struct {
	Flags              uint32
	Type               uint32
	TargetName         *uint16
	Comment            *uint16
	LastWritten        windows.Filetime
	CredentialBlobSize uint32
	CredentialBlob     *byte
	Persist            uint32
	AttributeCount     uint32
	Attributes         uintptr
	TargetAlias        *uint16
	UserName           *uint16
}

// WindowsCredentials keeps the API key in the Windows Credential Manager
// instead of the config file.
type WindowsCredentials struct{}

// NewCredentials creates the Windows credential store.
func NewCredentials() Credentials {
	return &WindowsCredentials{}
}

// Load reads the stored API key. A missing credential is an error; callers
// treat it as "not configured".
func (c *WindowsCredentials) Load() (string, error) {
	target, err := windows.UTF16PtrFromString(credTarget)
	if err != nil {
		return "", fmt.Errorf("UTF16 conversion failed: %w", err)
	}

	var pcred *credentialW
	r, _, errno := credReadW.Call(
		uintptr(unsafe.Pointer(target)),
		credTypeGeneric,
		0,
		uintptr(unsafe.Pointer(&pcred)),
	)
	if r == 0 {
		return "", fmt.Errorf("CredRead failed: %w", errno)
	}
	defer credFree.Call(uintptr(unsafe.Pointer(pcred)))

	if pcred.CredentialBlobSize == 0 {
		return "", nil
	}
	blob := unsafe.Slice(pcred.CredentialBlob, pcred.CredentialBlobSize)
	return string(blob), nil
}

// Save writes the API key to the credential store.
func (c *WindowsCredentials) Save(key string) error {
	if key == "" {
		return fmt.Errorf("refusing to store an empty API key")
	}

	target, err := windows.UTF16PtrFromString(credTarget)
	if err != nil {
		return fmt.Errorf("UTF16 conversion failed: %w", err)
	}

	blob := []byte(key)
	cred := credentialW{
		Type:               credTypeGeneric,
		TargetName:         target,
		CredentialBlobSize: uint32(len(blob)),
		CredentialBlob:     &blob[0],
		Persist:            credPersistLocalMachine,
	}

	r, _, errno := credWriteW.Call(uintptr(unsafe.Pointer(&cred)), 0)
	if r == 0 {
		return fmt.Errorf("CredWrite failed: %w", errno)
	}
	return nil
}

// Delete removes the stored API key.
func (c *WindowsCredentials) Delete() error {
	target, err := windows.UTF16PtrFromString(credTarget)
	if err != nil {
		return fmt.Errorf("UTF16 conversion failed: %w", err)
	}

	r, _, errno := credDeleteW.Call(uintptr(unsafe.Pointer(target)), credTypeGeneric, 0)
	if r == 0 {
		return fmt.Errorf("CredDelete failed: %w", errno)
	}
	return nil
}
