// Package resource describes the entity producing telemetry: a service
// name plus identifying attributes, shared by every span, metric and log
// record a provider emits.
package resource

import "github.com/lattice-obs/lattice/pkg/telemetry/attribute"

const ServiceNameKey = attribute.Key("service.name")

type Resource struct {
	attrs attribute.Set
}

// New builds a resource for the named service with extra identifying
// attributes. The service name always wins over a duplicate attribute.
func New(serviceName string, attrs ...attribute.KeyValue) *Resource {
	set := attribute.NewSet(attrs...)
	if serviceName != "" {
		set.Apply(attribute.String(string(ServiceNameKey), serviceName))
	}
	return &Resource{attrs: set}
}

// Empty returns a resource with no attributes.
func Empty() *Resource {
	return &Resource{}
}

// ServiceName returns the service.name attribute, empty if unset.
func (r *Resource) ServiceName() string {
	if r == nil {
		return ""
	}
	v, ok := r.attrs.Value(ServiceNameKey)
	if !ok {
		return ""
	}
	return v.AsString()
}

// Attributes returns the resource attributes sorted by key.
func (r *Resource) Attributes() []attribute.KeyValue {
	if r == nil {
		return nil
	}
	return r.attrs.ToSlice()
}
