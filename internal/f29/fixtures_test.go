package f29_test

// fullForm is the text layer of a complete declaration with every catalogue code.
const fullForm = `FORMULARIO 29 DECLARACION MENSUAL Y PAGO SIMULTANEO DE IMPUESTOS
FOLIO 987654321
RUT 76.123.456-7
RAZON SOCIAL COMERCIAL ANDES LIMITADA
PERIODO 202403
538 TOTAL DEBITOS 1.000.000
502 DEBITOS FACTURAS EMITIDAS 950.000
563 BASE IMPONIBLE 5.263.157
142 VENTAS Y/O SERVICIOS EXENTOS 100.000
511 CREDITO IVA POR DOCUMENTOS ELECTRONICOS 400.000
520 FACTURAS RECIBIDAS DEL GIRO 380.000
504 REMANENTE CREDITO MES ANTERIOR 20.000
537 TOTAL CREDITOS 420.000
062 PPM NETO DETERMINADO 15.000
048 IMPUESTO UNICO SEGUNDA CATEGORIA 30.000
091 TOTAL A PAGAR DENTRO DEL PLAZO LEGAL 645.000`

// partialForm carries five of the eleven catalogue codes.
const partialForm = `PERIODO TRIBUTARIO 202311
RUT CONTRIBUYENTE 9.876.543-K
538 TOTAL DÉBITOS 1.000.000
511 CRÉD. IVA 400.000
504 REMANENTE 20.000
062 P.P.M. 15.000
048 IMP. ÚNICO 30.000`

// noCodesForm has a text layer but nothing from the catalogue.
const noCodesForm = `CERTIFICADO DE SITUACION TRIBUTARIA
RAZON SOCIAL: FERRETERIA EL SOL SPA
EMITIDO POR INTERNET`
