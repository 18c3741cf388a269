package doms

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
)

// Namespace is the target namespace of the central webservice.
const Namespace = "http://central.doms.statsbiblioteket.dk/"

const soapEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"

type requestEnvelope struct {
	XMLName xml.Name    `xml:"soapenv:Envelope"`
	SoapNS  string      `xml:"xmlns:soapenv,attr"`
	CenNS   string      `xml:"xmlns:cen,attr"`
	Header  struct{}    `xml:"soapenv:Header"`
	Body    requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	Payload any
}

type getDatastreamContentsRequest struct {
	XMLName    xml.Name `xml:"cen:getDatastreamContents"`
	PID        string   `xml:"pid"`
	Datastream string   `xml:"datastream"`
}

type getObjectProfileRequest struct {
	XMLName xml.Name `xml:"cen:getObjectProfile"`
	PID     string   `xml:"pid"`
}

type markInProgressObjectRequest struct {
	XMLName xml.Name `xml:"cen:markInProgressObject"`
	PIDs    []string `xml:"pids"`
	Comment string   `xml:"comment"`
}

type modifyDatastreamRequest struct {
	XMLName    xml.Name `xml:"cen:modifyDatastream"`
	PID        string   `xml:"pid"`
	Datastream string   `xml:"datastream"`
	Contents   string   `xml:"contents"`
	Comment    string   `xml:"comment"`
}

type markPublishedObjectRequest struct {
	XMLName xml.Name `xml:"cen:markPublishedObject"`
	PIDs    []string `xml:"pids"`
	Comment string   `xml:"comment"`
}

type getDatastreamContentsResponse struct {
	Return string `xml:"return"`
}

type getObjectProfileResponse struct {
	Return struct {
		PID   string `xml:"pid"`
		State string `xml:"state"`
	} `xml:"return"`
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault *Fault `xml:"Fault"`
		Inner []byte `xml:",innerxml"`
	} `xml:"Body"`
}

var errEmptyBody = errors.New("empty soap body")

func encodeEnvelope(payload any) ([]byte, error) {
	env := requestEnvelope{
		SoapNS: soapEnvelopeNamespace,
		CenNS:  Namespace,
		Body:   requestBody{Payload: payload},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return nil, fmt.Errorf("encode soap envelope: %w", err)
	}
	return buf.Bytes(), nil
}

// decodeEnvelope returns the fault when the body carries one, otherwise it
// decodes the operation response into out (which may be nil).
func decodeEnvelope(data []byte, out any) (*Fault, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode soap envelope: %w", err)
	}
	if env.Body.Fault != nil {
		return env.Body.Fault, nil
	}
	if out == nil {
		return nil, nil
	}
	if len(bytes.TrimSpace(env.Body.Inner)) == 0 {
		return nil, errEmptyBody
	}
	if err := xml.Unmarshal(env.Body.Inner, out); err != nil {
		return nil, fmt.Errorf("decode soap response: %w", err)
	}
	return nil, nil
}
