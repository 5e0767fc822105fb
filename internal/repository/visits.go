// Package repository persists completed sales visits to DynamoDB.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/netventas/visitbot/internal/model/visit"
)

// dynamodbAPI is the minimal DynamoDB interface required by Visits.
// Defined here for testability.
type dynamodbAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Visits writes visit records to the sales_visits table.
type Visits struct {
	api       dynamodbAPI
	tableName string
}

// NewVisits creates the repository.
func NewVisits(api dynamodbAPI, tableName string) (*Visits, error) {
	if api == nil {
		return nil, errors.New("repository: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("repository: table name must not be empty")
	}
	return &Visits{api: api, tableName: tableName}, nil
}

// SaveVisit writes the record under a generated id and returns that id.
// The write timestamp is assigned here, not at intake.
func (v *Visits) SaveVisit(ctx context.Context, rec visit.Record) (string, error) {
	id := uuid.NewString()

	_, err := v.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(v.tableName),
		Item:                recordItem(id, rec, time.Now().UTC()),
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return "", fmt.Errorf("repository: SaveVisit: %w", err)
	}
	return id, nil
}

func recordItem(id string, rec visit.Record, ts time.Time) map[string]types.AttributeValue {
	servicios := make([]types.AttributeValue, 0, len(rec.CatalogoServicio))
	for _, s := range rec.CatalogoServicio {
		servicios = append(servicios, &types.AttributeValueMemberS{Value: s})
	}

	item := map[string]types.AttributeValue{
		"id":                &types.AttributeValueMemberS{Value: id},
		"banco":             &types.AttributeValueMemberS{Value: rec.Banco},
		"barrio":            &types.AttributeValueMemberS{Value: rec.Barrio},
		"catalogo_servicio": &types.AttributeValueMemberL{Value: servicios},
		"cedula":            &types.AttributeValueMemberS{Value: rec.Cedula},
		"coordenadas":       &types.AttributeValueMemberNULL{Value: true},
		"correo":            &types.AttributeValueMemberS{Value: rec.Correo},
		"datos_tecnicos": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"armario":      &types.AttributeValueMemberS{Value: rec.DatosTecnicos.Armario},
			"caja":         &types.AttributeValueMemberS{Value: rec.DatosTecnicos.Caja},
			"descripción":  &types.AttributeValueMemberS{Value: rec.DatosTecnicos.Descripcion},
			"distribuidor": &types.AttributeValueMemberS{Value: rec.DatosTecnicos.Distribuidor},
			"imei1":        &types.AttributeValueMemberS{Value: rec.DatosTecnicos.IMEI1},
			"imei2":        &types.AttributeValueMemberS{Value: rec.DatosTecnicos.IMEI2},
			"imsi":         &types.AttributeValueMemberS{Value: rec.DatosTecnicos.IMSI},
		}},
		"dirección":      &types.AttributeValueMemberS{Value: rec.Direccion},
		"distribuidor":   &types.AttributeValueMemberNULL{Value: true},
		"estado":         &types.AttributeValueMemberS{Value: rec.Estado},
		"id_cliente":     &types.AttributeValueMemberS{Value: rec.IDCliente},
		"nombre_cliente": &types.AttributeValueMemberS{Value: rec.NombreCliente},
		"num_cuenta":     &types.AttributeValueMemberS{Value: rec.NumCuenta},
		"observaciones":  &types.AttributeValueMemberS{Value: rec.Observaciones},
		"provincia":      &types.AttributeValueMemberS{Value: rec.ProvinciaID},
		"teléfono":       &types.AttributeValueMemberS{Value: rec.Telefono},
		"telefono2":      &types.AttributeValueMemberS{Value: rec.Telefono2},
		"timestamp":      &types.AttributeValueMemberS{Value: ts.Format(time.RFC3339)},
		"tipo_pago":      &types.AttributeValueMemberS{Value: rec.TipoPago},
		"tipo_venta":     &types.AttributeValueMemberS{Value: rec.TipoVentaID},
		"vendedorId":     &types.AttributeValueMemberS{Value: rec.VendedorID},
	}

	if rec.Coordenadas != nil {
		item["coordenadas"] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"lat": &types.AttributeValueMemberN{Value: formatFloat(rec.Coordenadas.Lat)},
			"lng": &types.AttributeValueMemberN{Value: formatFloat(rec.Coordenadas.Lng)},
		}}
	}

	return item
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
