package network

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirakextractor/internal/core/model"
)

type fakeProvider struct {
	conns  []model.Connection
	ifaces []model.Interface
	names  map[int32]string
	err    error
}

func (f *fakeProvider) Connections(context.Context) ([]model.Connection, error) {
	return f.conns, f.err
}

func (f *fakeProvider) Interfaces(context.Context) ([]model.Interface, error) {
	return f.ifaces, f.err
}

func (f *fakeProvider) ProcessName(_ context.Context, pid int32) (string, error) {
	name, ok := f.names[pid]
	if !ok {
		return "", errors.New("no such process")
	}
	return name, nil
}

func v4(addr string) model.InterfaceAddr {
	return model.InterfaceAddr{Family: model.FamilyIPv4, Address: addr}
}

func TestPrimaryIPv4(t *testing.T) {
	p := &fakeProvider{ifaces: []model.Interface{
		{Name: "lo", Addrs: []model.InterfaceAddr{v4("127.0.0.1")}},
		{Name: "eth0", Addrs: []model.InterfaceAddr{
			{Family: model.FamilyIPv6, Address: "fe80::1"},
			v4("10.0.0.5"),
		}},
	}}
	ip, err := PrimaryIPv4(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)
}

func TestPrimaryIPv4_SkipsLoopbackAddressOnOtherNic(t *testing.T) {
	p := &fakeProvider{ifaces: []model.Interface{
		{Name: "docker0", Addrs: []model.InterfaceAddr{v4("127.0.1.1")}},
		{Name: "enp0s3", Addrs: []model.InterfaceAddr{v4("172.17.0.2")}},
	}}
	ip, err := PrimaryIPv4(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "172.17.0.2", ip)
}

func TestPrimaryIPv4_None(t *testing.T) {
	for _, ifaces := range [][]model.Interface{
		nil,
		{{Name: "eth0"}},
		{{Name: "lo", Addrs: []model.InterfaceAddr{v4("10.0.0.1")}}},
	} {
		ip, err := PrimaryIPv4(context.Background(), &fakeProvider{ifaces: ifaces})
		require.NoError(t, err)
		assert.Equal(t, "", ip)
	}

	_, err := PrimaryIPv4(context.Background(), &fakeProvider{err: errors.New("boom")})
	assert.Error(t, err)
}

func TestListeningPorts(t *testing.T) {
	p := &fakeProvider{
		conns: []model.Connection{
			{Status: "LISTEN", LocalPort: 8323, PID: 100},
			{Status: "ESTABLISHED", LocalPort: 22, PID: 200},
			{Status: "LISTEN", LocalPort: 22, PID: 200},
			{Status: "LISTEN", LocalPort: 53, PID: 0},
			{Status: "LISTEN", LocalPort: 9556, PID: 300},
			{Status: "LISTEN", LocalPort: 8323, PID: 100},
		},
		names: map[int32]string{100: "routinator", 200: "sshd"},
	}

	ports, byPort, err := ListeningPorts(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, []uint32{8323, 22, 53, 9556, 8323}, ports)
	assert.Equal(t, []uint32{8323, 22, 53, 9556}, byPort.Ports())

	name, _ := byPort.Get(53)
	assert.Equal(t, UnknownProcess, name)
	name, _ = byPort.Get(9556)
	assert.Equal(t, UnknownProcess, name)
	name, _ = byPort.Get(8323)
	assert.Equal(t, "routinator", name)
}

func TestListeningPorts_Empty(t *testing.T) {
	ports, byPort, err := ListeningPorts(context.Background(), &fakeProvider{})
	require.NoError(t, err)
	assert.NotNil(t, ports)
	assert.Empty(t, ports)
	assert.Equal(t, 0, byPort.Len())
}

func TestValidateIPv4(t *testing.T) {
	for _, ip := range []string{"", "10.0.0.5", "255.255.255.255", "0.0.0.0"} {
		assert.NoError(t, ValidateIPv4(ip), ip)
	}
	for _, ip := range []string{"256.1.1.1", "10.0.0", "10.0.0.5.6", "fe80::1", "a.b.c.d", "10.0.0.5 "} {
		assert.ErrorIs(t, ValidateIPv4(ip), model.ErrInvalidIPFormat, ip)
	}
}
