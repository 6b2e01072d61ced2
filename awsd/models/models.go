package models

import (
	"net/netip"
	"time"
)

// Instance holds the useful information about one EC2 instance, normalized
// from the provider response.
type Instance struct {
	ImageID               string             // The ID of the AMI used to launch the instance.
	InstanceID            string             // The ID of the instance.
	NetworkInterfaces     []NetworkInterface // The network interfaces attached to the instance.
	State                 InstanceState      // The current state of the instance.
	LaunchTime            time.Time          // The time the instance was launched.
	Tags                  []Tag              // The tags assigned to the instance, in response order; duplicates allowed.
	CPUDetails            CPUDetails         // The CPU configuration of the instance.
	InstanceType          string             // The instance type, e.g. "t2.micro".
	SecurityGroups        []SecurityGroup    // The security groups for the instance.
	ClientToken           string             // The idempotency token provided at launch, if any.
	StateTransitionReason string             // The reason for the most recent state transition. May be empty.
	RootDeviceName        string             // The device name of the root device volume, e.g. "/dev/sda1".

	// Optional fields below default to the empty string when the provider
	// omits them from the record.
	RAMDiskID string // The RAM disk associated with the instance, if applicable.
	Platform  string // The platform details value, e.g. "Linux/UNIX".
	KernelID  string // The kernel associated with the instance, if applicable.
	HostID    string // The ID of the Dedicated Host the instance resides on.
}

// InstanceState is the structured instance status.
type InstanceState struct {
	Code int32
	Name string
}

// Tag is one key/value pair assigned to an instance.
type Tag struct {
	Key   string
	Value string
}

// CPUDetails describes the CPU configuration of an instance.
type CPUDetails struct {
	CoreCount      int32
	ThreadsPerCore int32
}

// SecurityGroup is one security group attached to an instance.
type SecurityGroup struct {
	GroupName string
	GroupID   string
}

// NetworkInterface holds the useful information about one virtual NIC
// attached to an instance.
//
// The three address fields use the netip.Addr zero value to mean absent: an
// address is set only when the raw value existed, was non-empty and parsed
// as a valid IP. Check with Addr.IsValid.
type NetworkInterface struct {
	IPOwnerID          string
	PublicDNSName      string
	MACAddress         string
	NetworkInterfaceID string
	OwnerID            string
	PrivateDNSName     string
	SubnetID           string
	Status             string
	PublicIPAddress    netip.Addr
	IPv6Address        netip.Addr
	PrivateIPAddress   netip.Addr
}
