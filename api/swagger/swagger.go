package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "PPGEE Dashboard API",
        "description": "Graduate, faculty and research project records of the PPGEE graduate program.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {
            "name": "Authentication"
        },
        {
            "name": "Graduates"
        },
        {
            "name": "Faculty"
        },
        {
            "name": "Projects"
        },
        {
            "name": "Imports"
        },
        {
            "name": "Statistics"
        },
        {
            "name": "Reports"
        },
        {
            "name": "Backup"
        }
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Authenticate user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/LoginRequest"
                        }
                    }
                ]
            }
        },
        "/auth/me": {
            "get": {
                "tags": [
                    "Authentication"
                ],
                "summary": "Current user",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/graduates": {
            "get": {
                "tags": [
                    "Graduates"
                ],
                "summary": "List graduates",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "First defense year"
                    },
                    {
                        "name": "endYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Last defense year"
                    },
                    {
                        "name": "course",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Mestrado, Doutorado or all"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Defendido, Cursando or all"
                    },
                    {
                        "name": "advisor",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Advisor name or all"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page"
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Graduates"
                ],
                "summary": "Create",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Graduate"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/graduates/{id}": {
            "get": {
                "tags": [
                    "Graduates"
                ],
                "summary": "Get",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Graduates"
                ],
                "summary": "Replace",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Graduate"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Graduates"
                ],
                "summary": "Delete",
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/faculty": {
            "get": {
                "tags": [
                    "Faculty"
                ],
                "summary": "List faculty",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "year",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Reference year"
                    },
                    {
                        "name": "category",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Category"
                    },
                    {
                        "name": "search",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Name substring"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page"
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Faculty"
                ],
                "summary": "Create",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Faculty"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/faculty/{id}": {
            "get": {
                "tags": [
                    "Faculty"
                ],
                "summary": "Get",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Faculty"
                ],
                "summary": "Replace",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Faculty"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Faculty"
                ],
                "summary": "Delete",
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/projects": {
            "get": {
                "tags": [
                    "Projects"
                ],
                "summary": "List projects",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "role",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Coordenador or Membro"
                    },
                    {
                        "name": "ongoing",
                        "in": "query",
                        "type": "boolean",
                        "required": false,
                        "description": "Without end year"
                    },
                    {
                        "name": "year",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Active in year"
                    },
                    {
                        "name": "page",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page"
                    },
                    {
                        "name": "page_size",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Page size"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "post": {
                "tags": [
                    "Projects"
                ],
                "summary": "Create",
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Forbidden",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Project"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": [
                    "Projects"
                ],
                "summary": "Get",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "put": {
                "tags": [
                    "Projects"
                ],
                "summary": "Replace",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    },
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Project"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            },
            "delete": {
                "tags": [
                    "Projects"
                ],
                "summary": "Delete",
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "404": {
                        "description": "Not found",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "id",
                        "in": "path",
                        "type": "string",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/imports/{kind}": {
            "post": {
                "tags": [
                    "Imports"
                ],
                "summary": "Import spreadsheet",
                "responses": {
                    "201": {
                        "description": "Imported",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Unreadable workbook",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "413": {
                        "description": "Too large",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "kind",
                        "in": "path",
                        "type": "string",
                        "required": true,
                        "enum": [
                            "graduates",
                            "faculty",
                            "projects"
                        ]
                    },
                    {
                        "name": "file",
                        "in": "formData",
                        "type": "file",
                        "required": true
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "multipart/form-data"
                ]
            }
        },
        "/stats/graduates": {
            "get": {
                "tags": [
                    "Statistics"
                ],
                "summary": "Graduate statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "startYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "First defense year"
                    },
                    {
                        "name": "endYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Last defense year"
                    },
                    {
                        "name": "course",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Mestrado, Doutorado or all"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Defendido, Cursando or all"
                    },
                    {
                        "name": "advisor",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Advisor name or all"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/stats/filter-default": {
            "get": {
                "tags": [
                    "Statistics"
                ],
                "summary": "Default statistics filter",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/reports/graduates": {
            "get": {
                "tags": [
                    "Reports"
                ],
                "summary": "Graduate roster report",
                "responses": {
                    "200": {
                        "description": "File",
                        "schema": {
                            "type": "file"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "format",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "csv or pdf"
                    },
                    {
                        "name": "startYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "First defense year"
                    },
                    {
                        "name": "endYear",
                        "in": "query",
                        "type": "integer",
                        "required": false,
                        "description": "Last defense year"
                    },
                    {
                        "name": "course",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Mestrado, Doutorado or all"
                    },
                    {
                        "name": "status",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Defendido, Cursando or all"
                    },
                    {
                        "name": "advisor",
                        "in": "query",
                        "type": "string",
                        "required": false,
                        "description": "Advisor name or all"
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "text/csv",
                    "application/pdf"
                ]
            }
        },
        "/backup": {
            "get": {
                "tags": [
                    "Backup"
                ],
                "summary": "Download backup",
                "responses": {
                    "200": {
                        "description": "Backup document",
                        "schema": {
                            "$ref": "#/definitions/Backup"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/backup/archive": {
            "post": {
                "tags": [
                    "Backup"
                ],
                "summary": "Archive backup and sign a download link",
                "responses": {
                    "201": {
                        "description": "Archived",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/backup/download": {
            "get": {
                "tags": [
                    "Backup"
                ],
                "summary": "Download archived backup",
                "responses": {
                    "200": {
                        "description": "Backup document",
                        "schema": {
                            "$ref": "#/definitions/Backup"
                        }
                    },
                    "401": {
                        "description": "Invalid token",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "403": {
                        "description": "Expired",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "token",
                        "in": "query",
                        "type": "string",
                        "required": true
                    }
                ]
            }
        },
        "/backup/restore": {
            "post": {
                "tags": [
                    "Backup"
                ],
                "summary": "Restore backup",
                "responses": {
                    "200": {
                        "description": "Restored",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    },
                    "400": {
                        "description": "Invalid document",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/Backup"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/data/clear": {
            "post": {
                "tags": [
                    "Backup"
                ],
                "summary": "Clear all data",
                "responses": {
                    "204": {
                        "description": "Cleared"
                    },
                    "412": {
                        "description": "Confirmation missing",
                        "schema": {
                            "$ref": "#/definitions/ResponseEnvelope"
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "payload",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ClearRequest"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": [
                "email",
                "password"
            ],
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            }
        },
        "Graduate": {
            "type": "object",
            "required": [
                "nome",
                "anoIngresso",
                "curso",
                "status"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "anoIngresso": {
                    "type": "integer"
                },
                "anoDefesa": {
                    "type": "integer"
                },
                "orientador": {
                    "type": "string"
                },
                "tituloDefesa": {
                    "type": "string"
                },
                "curso": {
                    "type": "string",
                    "enum": [
                        "Mestrado",
                        "Doutorado"
                    ]
                },
                "status": {
                    "type": "string",
                    "enum": [
                        "Defendido",
                        "Cursando"
                    ]
                },
                "cursandoDoutorado": {
                    "type": "boolean"
                },
                "trabalhando": {
                    "type": "string"
                },
                "trabalhandoOutroEstado": {
                    "type": "boolean"
                }
            }
        },
        "Faculty": {
            "type": "object",
            "required": [
                "nome",
                "ano"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "nome": {
                    "type": "string"
                },
                "categoria": {
                    "type": "string"
                },
                "ano": {
                    "type": "integer"
                }
            }
        },
        "Project": {
            "type": "object",
            "required": [
                "titulo",
                "atuacao",
                "anoInicio"
            ],
            "properties": {
                "id": {
                    "type": "string"
                },
                "titulo": {
                    "type": "string"
                },
                "natureza": {
                    "type": "string"
                },
                "coordenador": {
                    "type": "string"
                },
                "financiador": {
                    "type": "string"
                },
                "colaboracaoNaoAcademica": {
                    "type": "string"
                },
                "resumo": {
                    "type": "string"
                },
                "valorFinanciado": {
                    "type": "number"
                },
                "atuacao": {
                    "type": "string",
                    "enum": [
                        "Coordenador",
                        "Membro"
                    ]
                },
                "alunosMestradoEnvolvidos": {
                    "type": "integer"
                },
                "alunosDoutoradoEnvolvidos": {
                    "type": "integer"
                },
                "anoInicio": {
                    "type": "integer"
                },
                "anoFim": {
                    "type": "integer"
                }
            }
        },
        "Backup": {
            "type": "object",
            "properties": {
                "graduates": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Graduate"
                    }
                },
                "docentes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Faculty"
                    }
                },
                "projetos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/Project"
                    }
                }
            }
        },
        "ClearRequest": {
            "type": "object",
            "properties": {
                "confirm": {
                    "type": "boolean"
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_count": {
                    "type": "integer"
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "integer"
                }
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "object"
                },
                "error": {
                    "$ref": "#/definitions/APIError"
                },
                "pagination": {
                    "$ref": "#/definitions/Pagination"
                },
                "meta": {
                    "type": "object"
                }
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
