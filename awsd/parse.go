package awsd

import (
	"net/netip"

	"github.com/aws/aws-sdk-go-v2/aws"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"go.uber.org/zap"

	"awsinventory/awsd/models"
	apperrors "awsinventory/errors"
)

// Parser normalizes raw EC2 records into typed models. It performs no I/O;
// the only side effect is a diagnostic on the injected logger when an
// address value fails validation.
type Parser struct {
	logger *zap.Logger
}

// NewParser returns a Parser emitting diagnostics to the given logger.
func NewParser(logger *zap.Logger) *Parser {
	return &Parser{logger: logger}
}

// ToInstance builds a normalized Instance from one raw EC2 instance record.
// A required key absent from the record (nil pointer or nil slice in the SDK
// representation) fails with a MissingFieldError naming that key.
func (p *Parser) ToInstance(raw ec2types.Instance) (models.Instance, error) {
	instanceID, err := requireString("InstanceId", "", raw.InstanceId)
	if err != nil {
		return models.Instance{}, err
	}
	imageID, err := requireString("ImageId", instanceID, raw.ImageId)
	if err != nil {
		return models.Instance{}, err
	}

	if raw.NetworkInterfaces == nil {
		return models.Instance{}, apperrors.NewMissingField("NetworkInterfaces", instanceID)
	}
	interfaces := make([]models.NetworkInterface, 0, len(raw.NetworkInterfaces))
	for _, rawIface := range raw.NetworkInterfaces {
		iface, err := p.ToNetworkInterface(rawIface)
		if err != nil {
			return models.Instance{}, err
		}
		interfaces = append(interfaces, iface)
	}

	if raw.State == nil {
		return models.Instance{}, apperrors.NewMissingField("State", instanceID)
	}
	if raw.LaunchTime == nil {
		return models.Instance{}, apperrors.NewMissingField("LaunchTime", instanceID)
	}
	if raw.Tags == nil {
		return models.Instance{}, apperrors.NewMissingField("Tags", instanceID)
	}
	if raw.CpuOptions == nil {
		return models.Instance{}, apperrors.NewMissingField("CpuOptions", instanceID)
	}
	if raw.InstanceType == "" {
		return models.Instance{}, apperrors.NewMissingField("InstanceType", instanceID)
	}
	if raw.SecurityGroups == nil {
		return models.Instance{}, apperrors.NewMissingField("SecurityGroups", instanceID)
	}
	clientToken, err := requireString("ClientToken", instanceID, raw.ClientToken)
	if err != nil {
		return models.Instance{}, err
	}
	stateTransitionReason, err := requireString("StateTransitionReason", instanceID, raw.StateTransitionReason)
	if err != nil {
		return models.Instance{}, err
	}
	rootDeviceName, err := requireString("RootDeviceName", instanceID, raw.RootDeviceName)
	if err != nil {
		return models.Instance{}, err
	}

	instance := models.Instance{
		ImageID:           imageID,
		InstanceID:        instanceID,
		NetworkInterfaces: interfaces,
		State: models.InstanceState{
			Code: aws.ToInt32(raw.State.Code),
			Name: string(raw.State.Name),
		},
		LaunchTime: *raw.LaunchTime,
		Tags:       parseTags(raw.Tags),
		CPUDetails: models.CPUDetails{
			CoreCount:      aws.ToInt32(raw.CpuOptions.CoreCount),
			ThreadsPerCore: aws.ToInt32(raw.CpuOptions.ThreadsPerCore),
		},
		InstanceType:          string(raw.InstanceType),
		SecurityGroups:        parseSecurityGroups(raw.SecurityGroups),
		ClientToken:           clientToken,
		StateTransitionReason: stateTransitionReason,
		RootDeviceName:        rootDeviceName,
	}

	// Optional keys populate their field only when present in the record;
	// otherwise the field keeps its empty-string default.
	if raw.RamdiskId != nil {
		instance.RAMDiskID = *raw.RamdiskId
	}
	if raw.PlatformDetails != nil {
		instance.Platform = *raw.PlatformDetails
	}
	if raw.KernelId != nil {
		instance.KernelID = *raw.KernelId
	}
	if raw.Placement != nil && raw.Placement.HostId != nil {
		instance.HostID = *raw.Placement.HostId
	}

	return instance, nil
}

// ToNetworkInterface builds a normalized NetworkInterface from one raw
// interface record. Required keys, including the nested Association block,
// fail with a MissingFieldError when absent. Address values are best effort:
// a missing or empty value stays absent, an invalid one is logged and
// skipped, never fatal.
func (p *Parser) ToNetworkInterface(raw ec2types.InstanceNetworkInterface) (models.NetworkInterface, error) {
	ifaceID, err := requireString("NetworkInterfaceId", "", raw.NetworkInterfaceId)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	if raw.Association == nil {
		return models.NetworkInterface{}, apperrors.NewMissingField("Association", ifaceID)
	}
	ipOwnerID, err := requireString("Association.IpOwnerId", ifaceID, raw.Association.IpOwnerId)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	publicDNSName, err := requireString("Association.PublicDnsName", ifaceID, raw.Association.PublicDnsName)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	macAddress, err := requireString("MacAddress", ifaceID, raw.MacAddress)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	ownerID, err := requireString("OwnerId", ifaceID, raw.OwnerId)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	privateDNSName, err := requireString("PrivateDnsName", ifaceID, raw.PrivateDnsName)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	subnetID, err := requireString("SubnetId", ifaceID, raw.SubnetId)
	if err != nil {
		return models.NetworkInterface{}, err
	}
	if raw.Status == "" {
		return models.NetworkInterface{}, apperrors.NewMissingField("Status", ifaceID)
	}

	iface := models.NetworkInterface{
		IPOwnerID:          ipOwnerID,
		PublicDNSName:      publicDNSName,
		MACAddress:         macAddress,
		NetworkInterfaceID: ifaceID,
		OwnerID:            ownerID,
		PrivateDNSName:     privateDNSName,
		SubnetID:           subnetID,
		Status:             string(raw.Status),
	}

	if len(raw.Ipv6Addresses) > 0 {
		iface.IPv6Address = p.parseAddr("Ipv6Addresses", ifaceID, raw.Ipv6Addresses[0].Ipv6Address)
	}
	iface.PublicIPAddress = p.parseAddr("Association.PublicIp", ifaceID, raw.Association.PublicIp)
	iface.PrivateIPAddress = p.parseAddr("PrivateIpAddress", ifaceID, raw.PrivateIpAddress)

	return iface, nil
}

// parseAddr validates one optional address value. The zero Addr marks an
// absent field.
func (p *Parser) parseAddr(field, ifaceID string, value *string) netip.Addr {
	if value == nil || *value == "" {
		return netip.Addr{}
	}
	addr, err := netip.ParseAddr(*value)
	if err != nil {
		p.logger.Error("address is not valid in network interface",
			zap.String("field", field),
			zap.String("network_interface_id", ifaceID),
			zap.Error(err),
		)
		return netip.Addr{}
	}
	return addr
}

// requireString dereferences a required raw string field or reports it missing.
func requireString(field, recordID string, value *string) (string, error) {
	if value == nil {
		return "", apperrors.NewMissingField(field, recordID)
	}
	return *value, nil
}

// Helper function to parse tags, preserving response order and duplicates
func parseTags(tags []ec2types.Tag) []models.Tag {
	result := make([]models.Tag, 0, len(tags))
	for _, tag := range tags {
		result = append(result, models.Tag{
			Key:   aws.ToString(tag.Key),
			Value: aws.ToString(tag.Value),
		})
	}
	return result
}

// Helper function to parse security groups
func parseSecurityGroups(groups []ec2types.GroupIdentifier) []models.SecurityGroup {
	result := make([]models.SecurityGroup, 0, len(groups))
	for _, group := range groups {
		result = append(result, models.SecurityGroup{
			GroupName: aws.ToString(group.GroupName),
			GroupID:   aws.ToString(group.GroupId),
		})
	}
	return result
}
